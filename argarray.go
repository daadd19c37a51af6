package codec

import (
	"reflect"

	"github.com/typeforge/codec/wire"
)

// RegisterArgArrayCtor installs T's codec using the argument-array
// construction protocol (§4.6): T exposes no usable exported fields (it is
// immutable, or built by a constructor rather than field assignment), so
// encode extracts a fixed, ordered slice of constructor arguments and
// decode rebuilds T by calling fromArgs on the decoded slice. The
// constructor is sampled once at registration time (toArgs on T's zero
// value) to learn each argument's declared type, the same way the product
// builder learns field types from the struct's fields.
func RegisterArgArrayCtor[T any](c *Core, fieldNames []string, toArgs func(T) []any, fromArgs func([]any) (T, error)) {
	rt := reflect.TypeOf((*T)(nil)).Elem()

	var zero T
	sample := toArgs(zero)
	if len(sample) != len(fieldNames) {
		panic("codec: RegisterArgArrayCtor: toArgs arity does not match fieldNames for " + rt.String())
	}
	argTypes := make([]reflect.Type, len(sample))
	for i, a := range sample {
		argTypes[i] = reflect.TypeOf(a)
	}

	codec := &Codec{
		Type: rt,
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			args := toArgs(v.Interface().(T))
			if err := w.StartObject(); err != nil {
				return err
			}
			for i, name := range fieldNames {
				if err := w.BeginField(name); err != nil {
					return err
				}
				if err := dynamicEncode(c, argTypes[i], reflect.ValueOf(args[i]), w); err != nil {
					return err
				}
				if err := w.EndField(); err != nil {
					return err
				}
			}
			return w.EndObject()
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			if err := r.StartObject(); err != nil {
				return reflect.Value{}, err
			}
			args := make([]any, len(fieldNames))
			for i := range fieldNames {
				if _, more, err := r.BeginField(); err != nil {
					return reflect.Value{}, err
				} else if !more {
					return reflect.Value{}, errSchemaMismatch(rt.String(), "arg-array arity", nil)
				}
				arg, err := dynamicDecode(c, argTypes[i], r)
				if err != nil {
					return reflect.Value{}, err
				}
				args[i] = arg.Interface()
				if err := r.EndField(); err != nil {
					return reflect.Value{}, err
				}
			}
			if err := r.EndObject(); err != nil {
				return reflect.Value{}, err
			}
			v, err := fromArgs(args)
			if err != nil {
				return reflect.Value{}, errSchemaMismatch(rt.String(), "construct from arg array", err)
			}
			return reflect.ValueOf(v), nil
		},
	}
	put(c, rt, codec)
}
