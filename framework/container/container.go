package container

import (
	"sort"
	"time"

	"github.com/puzpuzpuz/xsync"
	"go.uber.org/zap"
)

// SelfName is the name the container is registered under inside itself.
const SelfName = "service_container"

// Container holds service definitions and parameters, and builds each
// declared service at most once, on first Get.
//
// Definitions and parameters are fixed at New. The first Get of every name
// is expected to happen from a single goroutine (typically at startup);
// once built, instances can be read concurrently.
type Container struct {
	// name → definition
	definitions map[string]*Definition

	// class identifier → constructor
	classes Classes

	// nested parameter store
	parameters Parameters

	// name → built instance
	instances *xsync.MapOf[string, any]

	logger *zap.Logger
}

// Option configures a Container at construction.
type Option func(*Container)

// WithClasses registers the constructors definitions refer to by Class.
func WithClasses(classes Classes) Option {
	return func(c *Container) {
		for name, ctor := range classes {
			c.classes[name] = ctor
		}
	}
}

// WithLogger makes the container log construction at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a container over definitions and parameters. Both maps are
// copied at the top level; callers must not mutate nested parameter maps
// afterwards.
func New(definitions map[string]*Definition, parameters Parameters, opts ...Option) *Container {
	c := &Container{
		definitions: make(map[string]*Definition, len(definitions)+1),
		classes:     make(Classes),
		parameters:  make(Parameters, len(parameters)),
		instances:   xsync.NewMapOf[any](),
		logger:      zap.NewNop(),
	}

	for name, def := range definitions {
		c.definitions[name] = def
	}
	for k, v := range parameters {
		c.parameters[k] = v
	}

	// Bind the container to itself unless the name was taken
	if _, ok := c.definitions[SelfName]; !ok {
		c.definitions[SelfName] = Instance(c)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ── Parameters ───────────────────────────────────────────────────────────────

// GetParameter returns the value at a dotted path, e.g. "mailer.transport".
func (c *Container) GetParameter(path string) (any, error) {
	return c.parameters.Get(path)
}

// HasParameter reports whether GetParameter would succeed for path.
func (c *Container) HasParameter(path string) bool {
	_, err := c.GetParameter(path)
	return err == nil
}

// Parameters returns the parameter store. It must be treated as read-only.
func (c *Container) Parameters() Parameters { return c.parameters }

// ── Services ─────────────────────────────────────────────────────────────────

// Has reports whether name is declared, whether or not it has been built.
func (c *Container) Has(name string) bool {
	_, ok := c.definitions[name]
	return ok
}

// Get returns the service registered under name, building it and its
// dependencies on first use.
func (c *Container) Get(name string) (any, error) {
	instance, err := c.get(name, &resolution{})
	if err != nil {
		c.logger.Warn("service resolution failed", zap.String("service", name), zap.Error(err))
	}
	return instance, err
}

// MustGet is like Get but panics on error.
func (c *Container) MustGet(name string) any {
	instance, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return instance
}

// Resolved reports whether name has already been built.
func (c *Container) Resolved(name string) bool {
	_, ok := c.instances.Load(name)
	return ok
}

// Names returns all declared service names, sorted.
func (c *Container) Names() []string {
	out := make([]string, 0, len(c.definitions))
	for name := range c.definitions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ── Resolution ───────────────────────────────────────────────────────────────

// resolution tracks the services being built by one top-level Get.
type resolution struct {
	stack []string
}

func (r *resolution) building(name string) bool {
	for _, n := range r.stack {
		if n == name {
			return true
		}
	}
	return false
}

func (r *resolution) push(name string) { r.stack = append(r.stack, name) }
func (r *resolution) pop()             { r.stack = r.stack[:len(r.stack)-1] }

func (c *Container) get(name string, r *resolution) (any, error) {
	if !c.Has(name) {
		return nil, &ServiceNotFoundError{Name: name}
	}

	if instance, ok := c.instances.Load(name); ok {
		return instance, nil
	}

	instance, err := c.createService(name, r)
	if err != nil {
		return nil, err
	}

	// First store wins if two goroutines raced to build the same name
	instance, _ = c.instances.LoadOrStore(name, instance)
	return instance, nil
}

// createService builds name and runs its calls. The result is not cached here.
func (c *Container) createService(name string, r *resolution) (any, error) {
	def := c.definitions[name]

	if def == nil || (def.Class == "" && def.Factory == nil) {
		return nil, newContainerError(name, InvalidDefinition, "entry must declare a class or a factory")
	}

	ctor := def.Factory
	if ctor == nil {
		var ok bool
		if ctor, ok = c.classes[def.Class]; !ok || ctor == nil {
			return nil, newContainerError(name, UnknownClass, "class does not exist: %s", def.Class)
		}
	}

	if r.building(name) {
		err := newContainerError(name, CircularReference, "contains a circular reference")
		err.Path = append(append(err.Path, r.stack...), name)
		return nil, err
	}

	r.push(name)
	defer r.pop()

	started := time.Now()

	args, err := c.resolveArguments(name, def.Arguments, r)
	if err != nil {
		return nil, err
	}

	service, err := ctor(args)
	if err != nil {
		cerr := newContainerError(name, ConstructionFailed, "could not be constructed by %s", def.label())
		cerr.Cause = err
		return nil, cerr
	}

	if len(def.Calls) > 0 {
		if err := c.initializeService(service, name, def.Calls, r); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("service constructed",
		zap.String("service", name),
		zap.String("class", def.label()),
		zap.Int("arguments", len(args)),
		zap.Int("calls", len(def.Calls)),
		zap.Duration("took", time.Since(started)),
	)

	return service, nil
}

// resolveArguments turns argument specs into values, in order. name is the
// service the arguments belong to and is only used to attribute errors.
func (c *Container) resolveArguments(name string, arguments []Argument, r *resolution) ([]any, error) {
	args := make([]any, 0, len(arguments))

	for i, spec := range arguments {
		var (
			value any
			err   error
		)

		switch a := spec.(type) {
		case ServiceReference:
			value, err = c.get(a.Name, r)
		case ParameterReference:
			value, err = c.GetParameter(a.Path)
		case Literal:
			value = a.Value
		case nil:
			value = nil
		}

		if err != nil {
			cerr := newContainerError(name, ArgumentFailed, "argument %d (%v) could not be resolved", i, spec)
			cerr.Cause = err
			return nil, cerr
		}
		args = append(args, value)
	}

	return args, nil
}

// initializeService runs calls on service in declared order and stops at the
// first failure.
func (c *Container) initializeService(service any, name string, calls []Call, r *resolution) error {
	for _, call := range calls {
		if call.Method == "" {
			return newContainerError(name, InvalidCall, "calls must declare a method")
		}

		method, err := lookupMethod(service, call.Method)
		if err != nil {
			return uncallable(name, call.Method, err)
		}

		args, err := c.resolveArguments(name, call.Arguments, r)
		if err != nil {
			return err
		}

		out, err := callFunc(method, args)
		if err != nil {
			return uncallable(name, call.Method, err)
		}
		if err := trailingError(out); err != nil {
			cerr := newContainerError(name, CallFailed, "call to %s failed", call.Method)
			cerr.Cause = err
			return cerr
		}
	}

	return nil
}

func uncallable(name, method string, cause error) error {
	cerr := newContainerError(name, UncallableMethod, "asks for call to uncallable method: %s", method)
	cerr.Cause = cause
	return cerr
}
