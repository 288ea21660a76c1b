package container

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrServiceNotFound matches lookups of an undeclared service name.
	ErrServiceNotFound = errors.New("service not found")

	// ErrParameterNotFound matches parameter paths missing at some segment.
	ErrParameterNotFound = errors.New("parameter not found")

	// ErrContainer is the umbrella for every definition and construction failure.
	ErrContainer = errors.New("container error")

	// ErrCircularReference matches the ContainerError raised when a service
	// is requested again while it is still being built.
	ErrCircularReference = errors.New("circular reference")
)

// ServiceNotFoundError is returned by Get for a name with no definition.
type ServiceNotFoundError struct {
	Name string
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service not found: %s", e.Name)
}

func (e *ServiceNotFoundError) Is(target error) bool { return target == ErrServiceNotFound }

// ParameterNotFoundError is returned by GetParameter when a path cannot be walked.
type ParameterNotFoundError struct {
	Path string
}

func (e *ParameterNotFoundError) Error() string {
	return fmt.Sprintf("parameter not found: %s", e.Path)
}

func (e *ParameterNotFoundError) Is(target error) bool { return target == ErrParameterNotFound }

// ErrorKind classifies a ContainerError.
type ErrorKind int

const (
	InvalidDefinition ErrorKind = iota + 1
	UnknownClass
	CircularReference
	ArgumentFailed
	ConstructionFailed
	InvalidCall
	UncallableMethod
	CallFailed
	TypeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidDefinition:
		return "invalid definition"
	case UnknownClass:
		return "unknown class"
	case CircularReference:
		return "circular reference"
	case ArgumentFailed:
		return "argument failed"
	case ConstructionFailed:
		return "construction failed"
	case InvalidCall:
		return "invalid call"
	case UncallableMethod:
		return "uncallable method"
	case CallFailed:
		return "call failed"
	case TypeMismatch:
		return "type mismatch"
	default:
		return "unknown"
	}
}

// ContainerError reports why a service could not be built, or why a
// resolved service or parameter has the wrong type.
//
// Service is the definition the failure is attributed to. Parameter is set
// instead for parameter type mismatches. Path is only set for circular
// references and holds the chain that closed the loop.
type ContainerError struct {
	Service   string
	Parameter string
	Kind      ErrorKind
	Detail  string
	Path    []string
	Cause   error
}

func (e *ContainerError) Error() string {
	var b strings.Builder
	if e.Parameter != "" {
		b.WriteString("parameter ")
		b.WriteString(e.Parameter)
		b.WriteString(" ")
	} else {
		b.WriteString(e.Service)
		b.WriteString(" service ")
	}
	b.WriteString(e.Detail)
	if len(e.Path) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Path, " -> "))
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ContainerError) Unwrap() error { return e.Cause }

func (e *ContainerError) Is(target error) bool {
	switch target {
	case ErrContainer:
		return true
	case ErrCircularReference:
		return e.Kind == CircularReference
	}
	return false
}

func newContainerError(service string, kind ErrorKind, format string, args ...any) *ContainerError {
	return &ContainerError{Service: service, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// IsKind reports whether any ContainerError in err's chain has the given kind.
func IsKind(err error, kind ErrorKind) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *ContainerError:
		return e.Kind == kind || IsKind(e.Cause, kind)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if IsKind(inner, kind) {
				return true
			}
		}
		return false
	}
	return IsKind(errors.Unwrap(err), kind)
}
