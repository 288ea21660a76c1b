package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the definitions, parameters and classes of one
// feature.
//
// Register runs against the Builder, before the container exists. Boot runs
// after Build, when every provider has registered, and may resolve services.
//
//	type MailProvider struct{ container.BaseProvider }
//
//	func (p *MailProvider) Register(b *container.Builder) {
//	    b.AddClass("Mailer", container.Func(NewMailer))
//	    b.Define("mailer", &container.Definition{
//	        Class:     "Mailer",
//	        Arguments: container.Args(container.Parameter("mailer.transport")),
//	    })
//	}
type ServiceProvider interface {
	// Register adds definitions to the builder.
	// Do NOT expect other providers' definitions to exist yet.
	Register(b *Builder)

	// Boot is called once the container is built.
	Boot(c *Container) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable no-op Boot.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers providers into a Builder, builds the container
// and boots the providers in registration order.
type ProviderRegistry struct {
	builder    *Builder
	container  *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry that registers into b.
func NewProviderRegistry(b *Builder) *ProviderRegistry {
	return &ProviderRegistry{
		builder:    b,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register calls provider.Register. Registering the same provider twice is a
// no-op. Registering after Build panics: the container cannot change.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	if r.container != nil {
		panic(fmt.Sprintf("container: cannot register %T after the container was built", provider))
	}
	r.registered[provider] = true

	provider.Register(r.builder)
	r.providers = append(r.providers, provider)
}

// Build creates the container once; later calls return the same one.
func (r *ProviderRegistry) Build(opts ...Option) *Container {
	if r.container == nil {
		r.container = r.builder.Build(opts...)
	}
	return r.container
}

// Boot builds the container if needed and calls Boot on every provider.
// It stops at the first provider error.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	c := r.Build()
	for _, provider := range r.providers {
		if err := provider.Boot(c); err != nil {
			return fmt.Errorf("booting %T: %w", provider, err)
		}
	}
	r.booted = true
	return nil
}

// Booted returns true once Boot has succeeded.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered providers in order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
