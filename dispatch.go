package codec

import (
	"reflect"

	"github.com/typeforge/codec/wire"
)

// dynamicEncode implements §4.4's dispatch rule, specialized to Go's type
// system: a declared interface type is always "non-final" (Go structs have
// no subclasses, so only interfaces ever hold a dynamic type different from
// their declared type) and therefore always carries a type tag; a declared
// concrete type is always "final" and never does.
func dynamicEncode(c *Core, declared reflect.Type, rv reflect.Value, w wire.Writer) error {
	// The presence/null byte only exists for nullable slots (§6); a bare
	// int, bool, or struct field has nothing to prefix.
	if isNilable(rv) {
		if rv.IsNil() {
			return w.WriteNull()
		}
		if err := w.WriteNotNull(); err != nil {
			return errStreamIO("write presence marker", err)
		}
	}

	if declared.Kind() == reflect.Interface {
		dv := rv.Elem()
		dt := dv.Type()
		id := c.typeIDForValue(dt)
		if err := w.WriteTypeTag(id); err != nil {
			return errStreamIO("write type tag", err)
		}
		codec, err := c.codecFor(dt)
		if err != nil {
			return err
		}
		return codec.Encode(c, dv, w)
	}

	codec, err := c.codecFor(declared)
	if err != nil {
		return err
	}
	return codec.Encode(c, rv, w)
}

// dynamicDecode is the read-side counterpart of dynamicEncode.
func dynamicDecode(c *Core, declared reflect.Type, r wire.Reader) (reflect.Value, error) {
	if isNilableKind(declared.Kind()) {
		null, err := r.IsNull()
		if err != nil {
			return reflect.Value{}, errStreamIO("read presence marker", err)
		}
		if null {
			return reflect.Zero(declared), nil
		}
	}

	if declared.Kind() == reflect.Interface {
		id, present, err := r.ReadTypeTag()
		if err != nil {
			return reflect.Value{}, errWireFormat(c.config.typeIdentifier(declared), "read type tag", err)
		}
		if !present || id == "" {
			return reflect.Value{}, errUnknownType(c.config.typeIdentifier(declared), "decode interface value without a type tag")
		}

		resolved, ok := c.config.resolveTypeIdentifier(id)
		if !ok {
			return reflect.Value{}, errUnknownType(id, "resolve type tag")
		}
		if resolved.Kind() == reflect.Interface {
			concrete, ok := c.config.defaultConcreteFor(resolved)
			if !ok {
				return reflect.Value{}, errUnknownType(id, "resolve abstract type tag without a default-concrete mapping")
			}
			resolved = concrete
		}
		if !c.config.isAllowed(resolved) {
			return reflect.Value{}, errDisallowedType(id)
		}

		codec, err := c.codecFor(resolved)
		if err != nil {
			return reflect.Value{}, err
		}
		value, err := codec.Decode(c, r)
		if err != nil {
			return reflect.Value{}, err
		}

		result := reflect.New(declared).Elem()
		if !value.Type().AssignableTo(declared) {
			return reflect.Value{}, errReflection(id, "assign decoded value to declared interface", nil)
		}
		result.Set(value)
		return result, nil
	}

	codec, err := c.codecFor(declared)
	if err != nil {
		return reflect.Value{}, err
	}
	return codec.Decode(c, r)
}

// typeIDForValue returns the wire identity a dynamic value of type dt should
// be tagged with: its registered proxy surrogate if one exists, else its own
// canonical identifier.
func (c *Core) typeIDForValue(dt reflect.Type) string {
	if surrogate, ok := c.config.proxyFor(dt); ok {
		return surrogate
	}
	return c.config.typeIdentifier(dt)
}

func isNilable(rv reflect.Value) bool {
	return isNilableKind(rv.Kind())
}

func isNilableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}
