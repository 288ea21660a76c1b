package container

import "fmt"

// Resolve gets name from the container and type-asserts it.
//
//	// Instead of: logger := c.MustGet("logger").(*zap.Logger)
//	// Write:      logger, err := container.Resolve[*zap.Logger](c, "logger")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T

	instance, err := c.Get(name)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, newContainerError(name, TypeMismatch, "resolved to %T, not %T", instance, zero)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, name string) T {
	typed, err := Resolve[T](c, name)
	if err != nil {
		panic(err)
	}
	return typed
}

// ResolveParameter gets the parameter at path and type-asserts it.
func ResolveParameter[T any](c *Container, path string) (T, error) {
	var zero T

	value, err := c.GetParameter(path)
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, &ContainerError{
			Parameter: path,
			Kind:      TypeMismatch,
			Detail:    fmt.Sprintf("is %T, not %T", value, zero),
		}
	}
	return typed, nil
}
