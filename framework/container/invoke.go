package container

import (
	"fmt"
	"math"

	"github.com/goccy/go-reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Func adapts a plain Go constructor into a Constructor. fn must be a function
// returning the service, optionally followed by an error. Resolved arguments
// are assigned positionally; numeric literals are converted to the declared
// numeric parameter type when the value fits it exactly.
//
//	classes := container.Classes{
//	    "Mailer": container.Func(NewMailer), // func NewMailer(transport string) *Mailer
//	}
//
// Func panics when fn does not have that shape.
func Func(fn any) Constructor {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		panic(fmt.Sprintf("container: Func expects a function, got %T", fn))
	}

	ft := fv.Type()
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		panic(fmt.Sprintf("container: Func expects a function returning (T) or (T, error), got %s", ft.String()))
	}

	return func(args []any) (any, error) {
		out, err := callFunc(fv, args)
		if err != nil {
			return nil, err
		}
		if err := trailingError(out); err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}
}

// lookupMethod finds the exported method named method on instance.
func lookupMethod(instance any, method string) (reflect.Value, error) {
	if instance == nil {
		return reflect.Value{}, fmt.Errorf("instance is nil")
	}

	m := reflect.ValueOf(instance).MethodByName(method)
	if !m.IsValid() {
		return reflect.Value{}, fmt.Errorf("%T has no exported method %s", instance, method)
	}
	return m, nil
}

// callFunc checks args against fn's signature and calls it.
func callFunc(fn reflect.Value, args []any) ([]reflect.Value, error) {
	ft := fn.Type()
	numIn := ft.NumIn()

	if ft.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("expects at least %d arguments, got %d", numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("expects %d arguments, got %d", numIn, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var target reflect.Type
		if ft.IsVariadic() && i >= numIn-1 {
			target = ft.In(numIn - 1).Elem()
		} else {
			target = ft.In(i)
		}

		v, err := coerce(arg, target)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}

	return fn.Call(in), nil
}

func coerce(arg any, target reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch target.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(target), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", target.String())
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(target) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(target.Kind()) {
		if !fits(v, target) {
			return reflect.Value{}, fmt.Errorf("cannot use %v (%T) as %s: value out of range or not exact", arg, arg, target.String())
		}
		return v.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, target.String())
}

// fits reports whether the numeric v converts to target without wrapping,
// changing sign or dropping a fraction.
func fits(v reflect.Value, target reflect.Type) bool {
	zero := reflect.Zero(target)

	switch {
	case isSigned(v.Kind()):
		n := v.Int()
		switch {
		case isSigned(target.Kind()):
			return !zero.OverflowInt(n)
		case isUnsigned(target.Kind()):
			return n >= 0 && !zero.OverflowUint(uint64(n))
		}
		return !zero.OverflowFloat(float64(n))

	case isUnsigned(v.Kind()):
		n := v.Uint()
		switch {
		case isSigned(target.Kind()):
			return n <= math.MaxInt64 && !zero.OverflowInt(int64(n))
		case isUnsigned(target.Kind()):
			return !zero.OverflowUint(n)
		}
		return !zero.OverflowFloat(float64(n))
	}

	f := v.Float()
	switch {
	case isSigned(target.Kind()):
		return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !zero.OverflowInt(int64(f))
	case isUnsigned(target.Kind()):
		return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !zero.OverflowUint(uint64(f))
	}
	return !zero.OverflowFloat(f)
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k) || k == reflect.Float32 || k == reflect.Float64
}

func trailingError(out []reflect.Value) error {
	if len(out) == 0 {
		return nil
	}
	last := out[len(out)-1]
	if last.Type() != errorType || last.IsNil() {
		return nil
	}
	return last.Interface().(error)
}
