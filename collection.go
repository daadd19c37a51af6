package codec

import (
	"reflect"

	"github.com/typeforge/codec/wire"
)

// buildSliceCodec builds the codec family for both slices and fixed-size
// arrays (§4.7). Byte format knows the element count ahead of decode from
// its length prefix; JSON/XML discover it one BeginElem at a time.
func buildSliceCodec(c *Core, rt reflect.Type) (*Codec, error) {
	elemType := rt.Elem()

	encode := func(c *Core, v reflect.Value, w wire.Writer) error {
		n := v.Len()
		if err := w.StartArray(n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := w.BeginElem(); err != nil {
				return err
			}
			if err := dynamicEncode(c, elemType, v.Index(i), w); err != nil {
				return err
			}
			if err := w.EndElem(); err != nil {
				return err
			}
		}
		return w.EndArray()
	}

	if rt.Kind() == reflect.Array {
		length := rt.Len()
		decode := func(c *Core, r wire.Reader) (reflect.Value, error) {
			if _, err := r.StartArray(); err != nil {
				return reflect.Value{}, errWireFormat(rt.String(), "start array", err)
			}
			out := reflect.New(rt).Elem()
			for i := 0; i < length; i++ {
				more, err := r.BeginElem()
				if err != nil {
					return reflect.Value{}, err
				}
				if !more {
					return reflect.Value{}, errSchemaMismatch(rt.String(), "array arity", nil)
				}
				ev, err := dynamicDecode(c, elemType, r)
				if err != nil {
					return reflect.Value{}, err
				}
				out.Index(i).Set(ev)
				if err := r.EndElem(); err != nil {
					return reflect.Value{}, err
				}
			}
			if err := r.EndArray(); err != nil {
				return reflect.Value{}, err
			}
			return out, nil
		}
		return &Codec{Type: rt, Encode: encode, Decode: decode}, nil
	}

	decode := func(c *Core, r wire.Reader) (reflect.Value, error) {
		n, err := r.StartArray()
		if err != nil {
			return reflect.Value{}, errWireFormat(rt.String(), "start array", err)
		}
		capHint := n
		if capHint < 0 {
			capHint = 0
		}
		out := reflect.MakeSlice(rt, 0, capHint)
		for i := 0; n < 0 || i < n; i++ {
			more, err := r.BeginElem()
			if err != nil {
				return reflect.Value{}, err
			}
			if !more {
				break
			}
			ev, err := dynamicDecode(c, elemType, r)
			if err != nil {
				return reflect.Value{}, err
			}
			out = reflect.Append(out, ev)
			if err := r.EndElem(); err != nil {
				return reflect.Value{}, err
			}
		}
		if err := r.EndArray(); err != nil {
			return reflect.Value{}, err
		}
		return out, nil
	}
	return &Codec{Type: rt, Encode: encode, Decode: decode}, nil
}
