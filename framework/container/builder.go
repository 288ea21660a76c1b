package container

import "fmt"

// Builder assembles definitions, parameters and classes before a Container
// exists. It is the only place definitions can be added: once Build runs the
// container is fixed.
//
//	b := container.NewBuilder()
//	b.AddClass("Mailer", container.Func(NewMailer))
//	b.SetParameter("mailer.transport", "sendmail")
//	b.Define("mailer", &container.Definition{
//	    Class:     "Mailer",
//	    Arguments: container.Args(container.Parameter("mailer.transport")),
//	})
//	c := b.Build()
type Builder struct {
	definitions map[string]*Definition
	parameters  Parameters
	classes     Classes
	aliases     map[string]string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		definitions: make(map[string]*Definition),
		parameters:  make(Parameters),
		classes:     make(Classes),
		aliases:     make(map[string]string),
	}
}

// Define registers def under name, replacing any earlier definition or
// alias of that name.
func (b *Builder) Define(name string, def *Definition) {
	delete(b.aliases, name)
	b.definitions[name] = def
}

// Instance registers a pre-built value under name.
func (b *Builder) Instance(name string, v any) {
	b.Define(name, Instance(v))
}

// Alias makes alias resolve to the same instance as name, replacing any
// earlier definition or alias of that name.
func (b *Builder) Alias(name, alias string) {
	if name == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", name))
	}
	delete(b.definitions, alias)
	b.aliases[alias] = name
}

// Defined reports whether name has a definition or alias so far.
func (b *Builder) Defined(name string) bool {
	if _, ok := b.aliases[name]; ok {
		return true
	}
	_, ok := b.definitions[name]
	return ok
}

// SetParameter stores value at a dotted path.
func (b *Builder) SetParameter(path string, value any) {
	b.parameters.Set(path, value)
}

// MergeParameters deep-merges a nested parameter map into the store.
func (b *Builder) MergeParameters(params map[string]any) {
	b.parameters.Merge(params)
}

// AddClass registers the constructor for a class identifier.
func (b *Builder) AddClass(class string, ctor Constructor) {
	b.classes[class] = ctor
}

// Build creates the Container. Aliases become definitions whose only
// argument is a reference to their target.
func (b *Builder) Build(opts ...Option) *Container {
	defs := make(map[string]*Definition, len(b.definitions)+len(b.aliases))
	for name, def := range b.definitions {
		defs[name] = def
	}
	for alias, name := range b.aliases {
		defs[alias] = &Definition{
			Factory:   func(args []any) (any, error) { return args[0], nil },
			Arguments: []Argument{Service(name)},
		}
	}

	opts = append([]Option{WithClasses(b.classes)}, opts...)
	return New(defs, b.parameters, opts...)
}
