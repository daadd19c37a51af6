package codec

import (
	"reflect"

	"github.com/typeforge/codec/wire"
)

// buildMapCodec builds the codec family for map types (§4.7). A
// string-keyed map on a self-describing format is written as an object
// whose field names are the map keys; everything else — non-string keys,
// or the positional Byte format where field names are meaningless — goes
// through the general {key,value} entry-pair protocol.
func buildMapCodec(c *Core, rt reflect.Type) (*Codec, error) {
	keyType := rt.Key()
	valType := rt.Elem()

	return &Codec{
		Type: rt,
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			if w.Named() && keyType.Kind() == reflect.String {
				return encodeStringKeyedMap(c, v, w, valType)
			}
			return encodeGeneralMap(c, v, w, keyType, valType)
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			out := reflect.MakeMap(rt)
			if r.Named() && keyType.Kind() == reflect.String {
				if err := decodeStringKeyedMap(c, out, r, keyType, valType); err != nil {
					return reflect.Value{}, err
				}
				return out, nil
			}
			if err := decodeGeneralMap(c, out, r, keyType, valType); err != nil {
				return reflect.Value{}, err
			}
			return out, nil
		},
	}, nil
}

func encodeStringKeyedMap(c *Core, v reflect.Value, w wire.Writer, valType reflect.Type) error {
	if err := w.StartObject(); err != nil {
		return err
	}
	iter := v.MapRange()
	for iter.Next() {
		if err := w.BeginField(iter.Key().String()); err != nil {
			return err
		}
		if err := dynamicEncode(c, valType, iter.Value(), w); err != nil {
			return err
		}
		if err := w.EndField(); err != nil {
			return err
		}
	}
	return w.EndObject()
}

func decodeStringKeyedMap(c *Core, out reflect.Value, r wire.Reader, keyType, valType reflect.Type) error {
	if err := r.StartObject(); err != nil {
		return err
	}
	for {
		name, more, err := r.BeginField()
		if err != nil {
			return err
		}
		if !more {
			break
		}
		val, err := dynamicDecode(c, valType, r)
		if err != nil {
			return err
		}
		key := reflect.New(keyType).Elem()
		key.SetString(name)
		out.SetMapIndex(key, val)
		if err := r.EndField(); err != nil {
			return err
		}
	}
	return r.EndObject()
}

func encodeGeneralMap(c *Core, v reflect.Value, w wire.Writer, keyType, valType reflect.Type) error {
	if err := w.StartArray(v.Len()); err != nil {
		return err
	}
	iter := v.MapRange()
	for iter.Next() {
		if err := w.BeginElem(); err != nil {
			return err
		}
		if err := w.StartObject(); err != nil {
			return err
		}
		if err := w.BeginField(c.config.Naming.KeyElem); err != nil {
			return err
		}
		if err := dynamicEncode(c, keyType, iter.Key(), w); err != nil {
			return err
		}
		if err := w.EndField(); err != nil {
			return err
		}
		if err := w.BeginField(c.config.Naming.ValueElem); err != nil {
			return err
		}
		if err := dynamicEncode(c, valType, iter.Value(), w); err != nil {
			return err
		}
		if err := w.EndField(); err != nil {
			return err
		}
		if err := w.EndObject(); err != nil {
			return err
		}
		if err := w.EndElem(); err != nil {
			return err
		}
	}
	return w.EndArray()
}

func decodeGeneralMap(c *Core, out reflect.Value, r wire.Reader, keyType, valType reflect.Type) error {
	n, err := r.StartArray()
	if err != nil {
		return err
	}
	for i := 0; n < 0 || i < n; i++ {
		more, err := r.BeginElem()
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if err := r.StartObject(); err != nil {
			return err
		}
		var key, val reflect.Value
		for j := 0; j < 2; j++ {
			name, more, err := r.BeginField()
			if err != nil {
				return err
			}
			if !more {
				break
			}
			isKey := j == 0
			if r.Named() {
				isKey = name == c.config.Naming.KeyElem
			}
			if isKey {
				key, err = dynamicDecode(c, keyType, r)
			} else {
				val, err = dynamicDecode(c, valType, r)
			}
			if err != nil {
				return err
			}
			if err := r.EndField(); err != nil {
				return err
			}
		}
		if err := r.EndObject(); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
		if err := r.EndElem(); err != nil {
			return err
		}
	}
	return r.EndArray()
}
