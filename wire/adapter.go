// Package wire defines the format-independent structural interface that the
// codec core writes to and reads from. Each concrete format (JSON, XML,
// length-prefixed binary) implements Writer and Reader; no codec above this
// package ever branches on which format is in play except through the
// Named() capability flag.
package wire

// Naming carries the wire-level element and attribute names a format uses
// for structural markers that spec.md leaves format-adapter-configurable:
// the root wrapper element, the polymorphic type tag, and the key/value
// element names used by the general (non-string-keyed) map codec.
type Naming struct {
	// RootElem names the top-level wrapper element. XML only.
	RootElem string
	// TypeAttr names the polymorphic type-tag attribute (XML) or object key (JSON).
	TypeAttr string
	// ValueKey names the wrapped-value object key. JSON only.
	ValueKey string
	// KeyElem and ValueElem name the two children of a general map entry.
	KeyElem   string
	ValueElem string
	// EntryElem prefixes each array element's name, followed by the element's
	// index (_0, _1, ...); a general map's entries are array elements too.
	// XML only.
	EntryElem string
}

// DefaultJSONNaming returns the conventional names used by the JSON adapter.
func DefaultJSONNaming() Naming {
	return Naming{
		TypeAttr:  "@type",
		ValueKey:  "@value",
		KeyElem:   "@key",
		ValueElem: "@value",
	}
}

// DefaultXMLNaming returns the conventional names used by the XML adapter.
func DefaultXMLNaming() Naming {
	return Naming{
		RootElem:  "_",
		TypeAttr:  "type",
		KeyElem:   "key",
		ValueElem: "value",
		EntryElem: "_",
	}
}

// Writer is the structural sink a codec encodes into. Every method pair
// (StartX/EndX, BeginX/EndX) must be balanced by the caller; adapters that
// don't need a given signal (Byte ignores field names, JSON/XML ignore
// array-length hints) treat the call as a no-op rather than reject it.
type Writer interface {
	// Named reports whether this format carries field/key names on the wire.
	// Byte format is positional and returns false.
	Named() bool

	// Close flushes any buffered output and closes off open root structure.
	Close() error

	WriteNull() error
	// WriteNotNull signals presence for formats that need an explicit marker
	// ahead of a non-null payload (Byte). No-op for self-describing formats.
	WriteNotNull() error

	WriteBool(v bool) error
	WriteInt(v int64, bits int) error
	WriteUint(v uint64, bits int) error
	WriteFloat(v float64, bits int) error
	WriteString(v string) error

	// WriteTypeTag writes the dynamic type identifier for the value about to
	// be written. id == "" means "dynamic type equals the declared static
	// type" and is still written explicitly rather than omitted, so decode
	// never has to guess whether a tag was skipped.
	WriteTypeTag(id string) error

	StartObject() error
	BeginField(name string) error
	EndField() error
	EndObject() error

	// StartArray receives the element count when known ahead of time so the
	// Byte adapter can prefix it; JSON/XML ignore n.
	StartArray(n int) error
	BeginElem() error
	EndElem() error
	EndArray() error
}

// Reader is the structural source a codec decodes from, mirroring Writer.
type Reader interface {
	Named() bool
	Close() error

	// IsNull peeks whether the current value slot is null. If it returns
	// false, the peeked non-null token (if any) remains available for the
	// next Read call.
	IsNull() (bool, error)

	ReadBool() (bool, error)
	ReadInt(bits int) (int64, error)
	ReadUint(bits int) (uint64, error)
	ReadFloat(bits int) (float64, error)
	ReadString() (string, error)

	// ReadTypeTag reports present=false when the declared static type is
	// final and no tag dance was performed at encode time. When present is
	// true, id == "" still means "use the declared type".
	ReadTypeTag() (id string, present bool, err error)

	StartObject() error
	// BeginField returns more=false once the object has no further fields.
	// For unnamed formats (Byte) name is always "" and more is driven by the
	// field count the caller already knows from the schema.
	BeginField() (name string, more bool, err error)
	EndField() error
	EndObject() error

	// StartArray returns the element count when known ahead of time (Byte),
	// or -1 when the format discovers elements one at a time (JSON/XML).
	StartArray() (n int, err error)
	BeginElem() (more bool, err error)
	EndElem() error
	EndArray() error
}
