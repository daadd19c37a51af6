package codec

import (
	"reflect"

	"github.com/typeforge/codec/wire"
)

// buildPointerCodec builds the codec for a declared pointer type. The
// presence byte / null token for the pointer itself is already handled one
// level up by dynamicEncode/dynamicDecode, so this codec only runs once the
// caller already knows the pointer is non-nil (encode) or is building a
// fresh value to point at (decode) — it must not write or read a second
// presence marker for the pointee.
func buildPointerCodec(c *Core, rt reflect.Type) (*Codec, error) {
	elemType := rt.Elem()
	return &Codec{
		Type: rt,
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			elemCodec, err := c.codecFor(elemType)
			if err != nil {
				return err
			}
			return elemCodec.Encode(c, v.Elem(), w)
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			elemCodec, err := c.codecFor(elemType)
			if err != nil {
				return reflect.Value{}, err
			}
			ev, err := elemCodec.Decode(c, r)
			if err != nil {
				return reflect.Value{}, err
			}
			ptr := reflect.New(elemType)
			ptr.Elem().Set(ev)
			return ptr, nil
		},
	}, nil
}
