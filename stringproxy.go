package codec

import (
	"reflect"

	"github.com/typeforge/codec/wire"
)

// RegisterStringProxy installs T's codec as a string-proxy (§4.8): encode
// writes toString(v), decode parses the string back into a T. This is the
// path for types with no usable exported-field schema but a stable,
// lossless string representation (big.Int, UUID, and similarly shaped
// standard library types).
func RegisterStringProxy[T any](c *Core, toString func(T) string, parse func(string) (T, error)) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	codec := &Codec{
		Type: rt,
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			return w.WriteString(toString(v.Interface().(T)))
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			s, err := r.ReadString()
			if err != nil {
				return reflect.Value{}, errWireFormat(rt.String(), "read string-proxy", err)
			}
			v, err := parse(s)
			if err != nil {
				return reflect.Value{}, errSchemaMismatch(rt.String(), "parse string-proxy", err)
			}
			return reflect.ValueOf(v), nil
		},
	}
	put(c, rt, codec)
}
