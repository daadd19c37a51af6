// Package codec is a reflective, multi-format value-serialization engine.
// Given a statically declared Go type and a live value, Encode produces a
// JSON, XML, or compact binary encoding; Decode reconstructs an equivalent
// value from that encoding and the same declared type. One core dispatch
// layer — registry, type resolution, product-field assembly, collection and
// map codecs, dynamic dispatch, string-proxy codecs — is shared across all
// three formats through the wire.Writer/wire.Reader capability.
package codec

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"reflect"

	"github.com/typeforge/codec/registry"
	"github.com/typeforge/codec/wire"
	"github.com/typeforge/codec/wire/bytewire"
	"github.com/typeforge/codec/wire/jsonwire"
	"github.com/typeforge/codec/wire/xmlwire"
)

// Format selects which wire form a Core reads and writes.
type Format int

const (
	FormatJSON Format = iota
	FormatXML
	FormatByte
)

// Codec pairs a target type with its encode/decode operations. Codecs hold
// no mutable state beyond their construction parameters and are shared by
// every call that reaches the same type identifier.
type Codec struct {
	Type   reflect.Type
	Encode func(c *Core, v reflect.Value, w wire.Writer) error
	Decode func(c *Core, r wire.Reader) (reflect.Value, error)
}

// Core owns the registry and configuration for one format. Build one with
// NewJSONCore, NewXMLCore, or NewByteCore and reuse it across calls; the
// registry is safe for concurrent encode/decode once bootstrap finishes.
type Core struct {
	format   Format
	config   *Config
	registry *registry.Cache[*Codec]
}

func newCore(format Format, naming wire.Naming, opts ...Option) *Core {
	c := &Core{
		format:   format,
		config:   newConfig(naming, opts...),
		registry: registry.New[*Codec](),
	}
	registerBootstrapCodecs(c)
	return c
}

// NewJSONCore returns a Core that encodes/decodes the self-describing JSON
// wire form.
func NewJSONCore(opts ...Option) *Core {
	return newCore(FormatJSON, wire.DefaultJSONNaming(), opts...)
}

// NewXMLCore returns a Core that encodes/decodes the self-describing XML
// wire form.
func NewXMLCore(opts ...Option) *Core {
	return newCore(FormatXML, wire.DefaultXMLNaming(), opts...)
}

// NewByteCore returns a Core that encodes/decodes the compact binary wire
// form.
func NewByteCore(opts ...Option) *Core {
	return newCore(FormatByte, wire.Naming{}, opts...)
}

// Config returns the Core's configuration. Its settings are fixed by the
// Options passed to the constructor; *Config has no exported mutator
// methods, and Naming is its only exported field. Config is queried but never mutated once the first encode or
// decode call runs.
func (c *Core) Config() *Config { return c.config }

func (c *Core) newWriter(out io.Writer) (wire.Writer, error) {
	switch c.format {
	case FormatJSON:
		return jsonwire.NewWriter(out, c.config.Naming), nil
	case FormatXML:
		return xmlwire.NewWriter(out, c.config.Naming), nil
	case FormatByte:
		return bytewire.NewWriter(out), nil
	default:
		return nil, fmt.Errorf("codec: unknown format %d", c.format)
	}
}

func (c *Core) newReader(in io.Reader) (wire.Reader, error) {
	switch c.format {
	case FormatJSON:
		return jsonwire.NewReader(in, c.config.Naming), nil
	case FormatXML:
		return xmlwire.NewReader(in, c.config.Naming)
	case FormatByte:
		return bytewire.NewReader(in), nil
	default:
		return nil, fmt.Errorf("codec: unknown format %d", c.format)
	}
}

// Encode writes v, declared as T, to out using the Core's wire format.
func Encode[T any](c *Core, v T, out io.Writer) error {
	declared := reflect.TypeOf((*T)(nil)).Elem()

	sink := out
	var gz *gzip.Writer
	if c.format == FormatByte && c.config.gzipByteStream {
		gz = gzip.NewWriter(out)
		sink = gz
	}

	w, err := c.newWriter(sink)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(&v).Elem()
	if err := dynamicEncode(c, declared, rv, w); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return errStreamIO("close", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return errStreamIO("close", err)
		}
	}
	return nil
}

// Decode reads a value declared as T from in using the Core's wire format.
func Decode[T any](c *Core, in io.Reader) (T, error) {
	var zero T
	declared := reflect.TypeOf((*T)(nil)).Elem()

	source := in
	if c.format == FormatByte && c.config.gzipByteStream {
		gz, err := gzip.NewReader(in)
		if err != nil {
			return zero, errStreamIO("open gzip", err)
		}
		defer gz.Close()
		source = gz
	}

	r, err := c.newReader(source)
	if err != nil {
		return zero, err
	}

	rv, err := dynamicDecode(c, declared, r)
	if err != nil {
		return zero, err
	}
	if err := r.Close(); err != nil {
		return zero, errStreamIO("close", err)
	}
	return rv.Interface().(T), nil
}

// EncodeToBytes is a convenience wrapper for callers that want the encoded
// form as a byte slice rather than writing through an io.Writer.
func EncodeToBytes[T any](c *Core, v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(c, v, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeFromBytes is a convenience wrapper for callers holding the encoded
// form as a byte slice rather than an io.Reader.
func DecodeFromBytes[T any](c *Core, data []byte) (T, error) {
	return Decode[T](c, bytes.NewReader(data))
}

// codecFor returns the codec for rt, materializing it on first use; the
// registry keeps at most one codec per type identifier (§4.3's lookup
// protocol).
func (c *Core) codecFor(rt reflect.Type) (*Codec, error) {
	id := c.config.typeIdentifier(rt)
	return c.registry.GetOrCreate(id, func() (*Codec, error) {
		return c.buildCodec(rt)
	})
}

// buildCodec implements the construction fallback chain: slice/array family,
// map family, pointers, the product builder for structs, the named-primitive
// fallback, and interfaces through their default-concrete mapping. There is
// no separate enum family. Primitives,
// string proxies, and arg-array constructors are installed directly into
// the registry during bootstrap or explicit registration and never reach
// this fallback.
func (c *Core) buildCodec(rt reflect.Type) (*Codec, error) {
	switch rt.Kind() {
	case reflect.Slice, reflect.Array:
		return buildSliceCodec(c, rt)
	case reflect.Map:
		return buildMapCodec(c, rt)
	case reflect.Ptr:
		return buildPointerCodec(c, rt)
	case reflect.Struct:
		return buildProductCodec(c, rt)
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		// A named type over a primitive kind (an enum-shaped type such as
		// `type Status int`) that never got its own bootstrap or string-proxy
		// registration. It rides the wire as its underlying primitive.
		return buildNamedPrimitiveCodec(c, rt)
	case reflect.Interface:
		if concrete, ok := c.config.defaultConcreteFor(rt); ok {
			return c.codecFor(concrete)
		}
		return nil, errUnknownType(c.config.typeIdentifier(rt), "build codec for interface without default-concrete registration")
	default:
		return nil, errUnknownType(c.config.typeIdentifier(rt), "build codec")
	}
}
