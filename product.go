package codec

import (
	"reflect"

	"github.com/typeforge/codec/wire"
)

// fieldSpec is one resolved product field: its wire name, the reflect field
// path to reach it (more than one element deep for promoted fields from an
// embedded struct), and its declared type.
type fieldSpec struct {
	name  string
	index []int
	typ   reflect.Type
}

// collectFields walks rt's exported fields in declaration order, flattening
// anonymous struct embeds the way Go's own field promotion does, and
// renaming any name collision that promotion introduces with the
// configured policy (default: prepend an underscore and retry).
func collectFields(config *Config, rt reflect.Type) []fieldSpec {
	var fields []fieldSpec
	seen := make(map[string]bool)
	collectFieldsInto(config, rt, nil, &fields, seen)
	return fields
}

func collectFieldsInto(config *Config, rt reflect.Type, prefix []int, out *[]fieldSpec, seen map[string]bool) {
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue
		}
		tag := f.Tag.Get("codec")
		if tag == "-" {
			continue
		}
		index := append(append([]int{}, prefix...), i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectFieldsInto(config, f.Type, index, out, seen)
			continue
		}
		name := f.Name
		if tag != "" {
			name = tag
		}
		for seen[name] {
			name = config.renameCollision(name)
		}
		seen[name] = true
		*out = append(*out, fieldSpec{name: name, index: index, typ: f.Type})
	}
}

// buildProductCodec builds the field-codec assembly described in §4.5:
// fields are visited in the same order on encode and decode, named formats
// match incoming fields by name, and the positional Byte format matches by
// that same declaration order since it carries no names on the wire.
func buildProductCodec(c *Core, rt reflect.Type) (*Codec, error) {
	fields := collectFields(c.config, rt)
	id := c.config.typeIdentifier(rt)
	c.config.registerNamed(id, rt)

	return &Codec{
		Type: rt,
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			if err := w.StartObject(); err != nil {
				return err
			}
			for _, f := range fields {
				if err := w.BeginField(f.name); err != nil {
					return err
				}
				if err := dynamicEncode(c, f.typ, v.FieldByIndex(f.index), w); err != nil {
					return err
				}
				if err := w.EndField(); err != nil {
					return err
				}
			}
			return w.EndObject()
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			out := reflect.New(rt).Elem()
			if err := r.StartObject(); err != nil {
				return reflect.Value{}, err
			}

			if r.Named() {
				byName := make(map[string]fieldSpec, len(fields))
				for _, f := range fields {
					byName[f.name] = f
				}
				for {
					name, more, err := r.BeginField()
					if err != nil {
						return reflect.Value{}, err
					}
					if !more {
						break
					}
					f, ok := byName[name]
					if !ok {
						return reflect.Value{}, errSchemaMismatch(id, "unknown field "+name, nil)
					}
					fv, err := dynamicDecode(c, f.typ, r)
					if err != nil {
						return reflect.Value{}, err
					}
					out.FieldByIndex(f.index).Set(fv)
					if err := r.EndField(); err != nil {
						return reflect.Value{}, err
					}
				}
			} else {
				for _, f := range fields {
					if _, more, err := r.BeginField(); err != nil {
						return reflect.Value{}, err
					} else if !more {
						return reflect.Value{}, errSchemaMismatch(id, "field arity", nil)
					}
					fv, err := dynamicDecode(c, f.typ, r)
					if err != nil {
						return reflect.Value{}, err
					}
					out.FieldByIndex(f.index).Set(fv)
					if err := r.EndField(); err != nil {
						return reflect.Value{}, err
					}
				}
			}

			if err := r.EndObject(); err != nil {
				return reflect.Value{}, err
			}
			return out, nil
		},
	}, nil
}

// RegisterProduct pre-builds and installs T's product codec ahead of first
// use. Callers don't need this — codecFor builds it lazily the first time
// T is reached — but registering up front installs T's codec and wire name
// before any concurrent encode/decode can reach the lazy build path.
func RegisterProduct[T any](c *Core) error {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	codec, err := buildProductCodec(c, rt)
	if err != nil {
		return err
	}
	put(c, rt, codec)
	return nil
}
