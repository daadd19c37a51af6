package codec

import (
	"math/big"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/typeforge/codec/wire"
)

// registerBootstrapCodecs installs the codecs every Core needs before any
// user type can be resolved: the primitive scalars and []byte, the standard
// library types with a natural string-proxy form (*big.Int, uuid.UUID), and
// the arg-array codecs for time.Time and time.Duration. No default-concrete
// mapping is installed here; those come only from WithDefaultConcrete.
func registerBootstrapCodecs(c *Core) {
	registerPrimitiveCodecs(c)
	registerStringProxyCodecs(c)
	registerArgArrayCodecs(c)
}

func put(c *Core, rt reflect.Type, codec *Codec) {
	id := c.config.typeIdentifier(rt)
	c.config.registerNamed(id, rt)
	c.registry.Set(id, codec)
}

func registerPrimitiveCodecs(c *Core) {
	put(c, reflect.TypeOf(false), boolCodec())
	put(c, reflect.TypeOf(int8(0)), intCodec(reflect.TypeOf(int8(0)), 8))
	put(c, reflect.TypeOf(int16(0)), intCodec(reflect.TypeOf(int16(0)), 16))
	put(c, reflect.TypeOf(int32(0)), intCodec(reflect.TypeOf(int32(0)), 32))
	put(c, reflect.TypeOf(int64(0)), intCodec(reflect.TypeOf(int64(0)), 64))
	put(c, reflect.TypeOf(int(0)), intCodec(reflect.TypeOf(int(0)), 64))
	put(c, reflect.TypeOf(uint8(0)), uintCodec(reflect.TypeOf(uint8(0)), 8))
	put(c, reflect.TypeOf(uint16(0)), uintCodec(reflect.TypeOf(uint16(0)), 16))
	put(c, reflect.TypeOf(uint32(0)), uintCodec(reflect.TypeOf(uint32(0)), 32))
	put(c, reflect.TypeOf(uint64(0)), uintCodec(reflect.TypeOf(uint64(0)), 64))
	put(c, reflect.TypeOf(uint(0)), uintCodec(reflect.TypeOf(uint(0)), 64))
	put(c, reflect.TypeOf(float32(0)), floatCodec(reflect.TypeOf(float32(0)), 32))
	put(c, reflect.TypeOf(float64(0)), floatCodec(reflect.TypeOf(float64(0)), 64))
	put(c, reflect.TypeOf(""), stringCodec())

	// []byte gets its own codec rather than falling through the general
	// slice builder: every format can write it as one opaque string/blob.
	put(c, reflect.TypeOf([]byte(nil)), byteSliceCodec())

	c.config.registerAlias(reflect.TypeOf(false), "bool")
	c.config.registerAlias(reflect.TypeOf(int64(0)), "long")
	c.config.registerAlias(reflect.TypeOf(int32(0)), "int")
	c.config.registerAlias(reflect.TypeOf(float64(0)), "double")
	c.config.registerAlias(reflect.TypeOf(""), "string")
	c.config.registerAlias(reflect.TypeOf([]byte(nil)), "bytes")
}

// buildNamedPrimitiveCodec handles a named type whose Kind() is a primitive
// but whose reflect.Type identity differs from the corresponding bootstrap
// builtin (an enum-shaped type such as `type Status int` or `type Celsius
// float64`). It reuses the same wire encoding as the underlying builtin,
// just addressed through rt's own reflect.New so the decoded value comes
// back with the named type rather than the bare builtin.
func buildNamedPrimitiveCodec(c *Core, rt reflect.Type) (*Codec, error) {
	switch rt.Kind() {
	case reflect.Bool:
		return &Codec{
			Type: rt,
			Encode: func(c *Core, v reflect.Value, w wire.Writer) error { return w.WriteBool(v.Bool()) },
			Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
				b, err := r.ReadBool()
				if err != nil {
					return reflect.Value{}, errWireFormat(rt.String(), "read", err)
				}
				out := reflect.New(rt).Elem()
				out.SetBool(b)
				return out, nil
			},
		}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := bitsFor(rt.Kind())
		return intCodec(rt, bits), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		bits := bitsFor(rt.Kind())
		return uintCodec(rt, bits), nil
	case reflect.Float32, reflect.Float64:
		bits := 32
		if rt.Kind() == reflect.Float64 {
			bits = 64
		}
		return floatCodec(rt, bits), nil
	case reflect.String:
		return &Codec{
			Type: rt,
			Encode: func(c *Core, v reflect.Value, w wire.Writer) error { return w.WriteString(v.String()) },
			Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
				s, err := r.ReadString()
				if err != nil {
					return reflect.Value{}, errWireFormat(rt.String(), "read", err)
				}
				out := reflect.New(rt).Elem()
				out.SetString(s)
				return out, nil
			},
		}, nil
	default:
		return nil, errUnknownType(rt.String(), "build named primitive codec")
	}
}

func bitsFor(kind reflect.Kind) int {
	switch kind {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32:
		return 32
	default:
		return 64
	}
}

func boolCodec() *Codec {
	return &Codec{
		Type: reflect.TypeOf(false),
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			return w.WriteBool(v.Bool())
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			b, err := r.ReadBool()
			if err != nil {
				return reflect.Value{}, errWireFormat("bool", "read", err)
			}
			return reflect.ValueOf(b), nil
		},
	}
}

func intCodec(rt reflect.Type, bits int) *Codec {
	return &Codec{
		Type: rt,
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			return w.WriteInt(v.Int(), bits)
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			n, err := r.ReadInt(bits)
			if err != nil {
				return reflect.Value{}, errWireFormat(rt.String(), "read", err)
			}
			out := reflect.New(rt).Elem()
			out.SetInt(n)
			return out, nil
		},
	}
}

func uintCodec(rt reflect.Type, bits int) *Codec {
	return &Codec{
		Type: rt,
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			return w.WriteUint(v.Uint(), bits)
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			n, err := r.ReadUint(bits)
			if err != nil {
				return reflect.Value{}, errWireFormat(rt.String(), "read", err)
			}
			out := reflect.New(rt).Elem()
			out.SetUint(n)
			return out, nil
		},
	}
}

func floatCodec(rt reflect.Type, bits int) *Codec {
	return &Codec{
		Type: rt,
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			return w.WriteFloat(v.Float(), bits)
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			f, err := r.ReadFloat(bits)
			if err != nil {
				return reflect.Value{}, errWireFormat(rt.String(), "read", err)
			}
			out := reflect.New(rt).Elem()
			out.SetFloat(f)
			return out, nil
		},
	}
}

func stringCodec() *Codec {
	return &Codec{
		Type: reflect.TypeOf(""),
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			return w.WriteString(v.String())
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			s, err := r.ReadString()
			if err != nil {
				return reflect.Value{}, errWireFormat("string", "read", err)
			}
			return reflect.ValueOf(s), nil
		},
	}
}

func byteSliceCodec() *Codec {
	return &Codec{
		Type: reflect.TypeOf([]byte(nil)),
		Encode: func(c *Core, v reflect.Value, w wire.Writer) error {
			return w.WriteString(string(v.Bytes()))
		},
		Decode: func(c *Core, r wire.Reader) (reflect.Value, error) {
			s, err := r.ReadString()
			if err != nil {
				return reflect.Value{}, errWireFormat("[]byte", "read", err)
			}
			return reflect.ValueOf([]byte(s)), nil
		},
	}
}

// registerStringProxyCodecs wires the standard library types that have a
// natural lossless string form, following the string-proxy protocol in
// §4.8: encode writes the proxy's string, decode parses it back.
func registerStringProxyCodecs(c *Core) {
	RegisterStringProxy[*big.Int](c,
		func(v *big.Int) string { return v.String() },
		func(s string) (*big.Int, error) {
			n := new(big.Int)
			if _, ok := n.SetString(s, 10); !ok {
				return nil, errSchemaMismatch("big.Int", "parse", nil)
			}
			return n, nil
		},
	)
	RegisterStringProxy[uuid.UUID](c,
		func(v uuid.UUID) string { return v.String() },
		func(s string) (uuid.UUID, error) {
			id, err := uuid.Parse(s)
			if err != nil {
				return uuid.UUID{}, errSchemaMismatch("uuid.UUID", "parse", err)
			}
			return id, nil
		},
	)
}

// registerArgArrayCodecs wires the standard library types that have no
// exported fields to drive reflection from but do have a small, stable
// constructor, following the arg-array protocol in §4.6.
func registerArgArrayCodecs(c *Core) {
	RegisterArgArrayCtor[time.Time](c,
		[]string{"unixNano"},
		func(v time.Time) []any { return []any{v.UnixNano()} },
		func(args []any) (time.Time, error) {
			return time.Unix(0, args[0].(int64)), nil
		},
	)
	RegisterArgArrayCtor[time.Duration](c,
		[]string{"nanos"},
		func(v time.Duration) []any { return []any{int64(v)} },
		func(args []any) (time.Duration, error) {
			return time.Duration(args[0].(int64)), nil
		},
	)
}
