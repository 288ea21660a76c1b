// Package container provides a small named-service IoC container with a
// nested parameter store.
//
// # Overview
//
// Services are declared up front as Definitions: a class (or a factory), an
// ordered list of constructor arguments, and an optional list of method
// calls to run on the new instance. Nothing is built until the first Get;
// after that the same instance is returned for the lifetime of the container.
//
// Arguments are one of three kinds:
//
//	container.Service("logger")          // another service, built on demand
//	container.Parameter("mailer.host")   // a value from the parameter store
//	container.Value(25)                  // anything else, passed as is
//
// A service that, directly or not, needs itself to be built fails with a
// ContainerError matching ErrCircularReference.
//
// # Building a container
//
//	c := container.New(map[string]*container.Definition{
//	    "mailer": {
//	        Class:     "Mailer",
//	        Arguments: container.Args(container.Parameter("mailer.transport")),
//	        Calls: []container.Call{
//	            {Method: "SetLogger", Arguments: container.Args(container.Service("logger"))},
//	        },
//	    },
//	    "logger": container.Instance(zap.NewExample()),
//	}, container.Parameters{
//	    "mailer": map[string]any{"transport": "sendmail"},
//	}, container.WithClasses(container.Classes{
//	    "Mailer": container.Func(NewMailer),
//	}))
//
// # Resolving
//
//	raw, err := c.Get("mailer")
//	mailer, err := container.Resolve[*Mailer](c, "mailer")
//	host, err := c.GetParameter("mailer.transport")
//
// # Service Providers
//
//	registry := container.NewProviderRegistry(container.NewBuilder())
//	registry.Register(&MailProvider{})
//	if err := registry.Boot(); err != nil { ... }
//	c := registry.Build()
//
// Definitions are immutable once the container is built. The first Get of a
// name must not race with another first Get of the same name; cached
// instances can be read from any goroutine.
package container
