package container

import "fmt"

// Argument is one positional input of a constructor or a call.
//
// The set of implementations is closed: ServiceReference, ParameterReference
// and Literal. Resolution switches over exactly these three.
type Argument interface {
	argument()
}

// ServiceReference resolves to the instance of another named service.
type ServiceReference struct {
	Name string
}

// ParameterReference resolves to the value at a dotted parameter path.
type ParameterReference struct {
	Path string
}

// Literal is passed through unchanged.
type Literal struct {
	Value any
}

func (ServiceReference) argument()   {}
func (ParameterReference) argument() {}
func (Literal) argument()            {}

func (r ServiceReference) String() string   { return "@" + r.Name }
func (r ParameterReference) String() string { return "%" + r.Path + "%" }
func (l Literal) String() string            { return fmt.Sprintf("%v", l.Value) }

// Service references the service registered under name.
//
//	container.Service("mailer")
func Service(name string) ServiceReference { return ServiceReference{Name: name} }

// Parameter references the parameter at path.
//
//	container.Parameter("mailer.transport")
func Parameter(path string) ParameterReference { return ParameterReference{Path: path} }

// Value wraps v as a literal argument.
func Value(v any) Literal { return Literal{Value: v} }

// Args builds an argument list. Values that already are an Argument are kept,
// anything else becomes a Literal.
//
//	container.Args(container.Service("logger"), container.Parameter("mail.host"), 25)
func Args(values ...any) []Argument {
	args := make([]Argument, len(values))
	for i, v := range values {
		if a, ok := v.(Argument); ok {
			args[i] = a
			continue
		}
		args[i] = Literal{Value: v}
	}
	return args
}
