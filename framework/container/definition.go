package container

// Constructor builds a service from its resolved arguments, in declared order.
type Constructor func(args []any) (any, error)

// Classes maps class identifiers used by definitions to their constructors.
type Classes map[string]Constructor

// Definition describes how to build one named service.
//
// Factory takes precedence over Class. A definition needs one of the two.
//
//	defs := map[string]*container.Definition{
//	    "mailer": {
//	        Class:     "Mailer",
//	        Arguments: container.Args(container.Parameter("mailer.transport")),
//	        Calls: []container.Call{
//	            {Method: "SetLogger", Arguments: container.Args(container.Service("logger"))},
//	        },
//	    },
//	}
type Definition struct {
	Class     string
	Factory   Constructor
	Arguments []Argument
	Calls     []Call
}

// Call is a method invoked on a freshly built instance before it is cached.
type Call struct {
	Method    string
	Arguments []Argument
}

// Instance returns a definition whose service is the pre-built value v.
//
//	defs["config"] = container.Instance(cfg)
func Instance(v any) *Definition {
	return &Definition{Factory: func([]any) (any, error) { return v, nil }}
}

// label names what the definition builds, for logs.
func (d *Definition) label() string {
	if d.Factory != nil && d.Class == "" {
		return "factory"
	}
	return d.Class
}
