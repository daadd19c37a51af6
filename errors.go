package codec

import "fmt"

// Kind categorizes a codec Error the way the retrieved mini-rpc client
// categorized transport failures, generalized to the failure modes a
// reflective serialization engine can hit.
type Kind int

const (
	// UnknownType means a type identifier has no registration path: no
	// explicit codec, no proxy, no primitive/collection/enum/string-proxy
	// match, and no usable product schema.
	UnknownType Kind = iota
	// DisallowedType means a decode-time type tag resolved to a class
	// rejected by the allow-list.
	DisallowedType
	// SchemaMismatch means an object was missing a required field, an
	// arg-array constructor received the wrong arity, or a sequence had an
	// unexpected element count.
	SchemaMismatch
	// WireFormat means the underlying adapter found malformed tokens.
	WireFormat
	// Reflection means a target type could not be instantiated or a field
	// could not be set via reflection.
	Reflection
	// StreamIO means the underlying io.Reader/io.Writer failed.
	StreamIO
)

func (k Kind) String() string {
	switch k {
	case UnknownType:
		return "UnknownType"
	case DisallowedType:
		return "DisallowedType"
	case SchemaMismatch:
		return "SchemaMismatch"
	case WireFormat:
		return "WireFormat"
	case Reflection:
		return "Reflection"
	case StreamIO:
		return "StreamIO"
	default:
		return "Unknown"
	}
}

// Error is the single failure type surfaced by every codec operation. It
// identifies the offending type and the operation that failed.
type Error struct {
	Kind      Kind
	TypeName  string
	Operation string
	Err       error
}

func (e *Error) Error() string {
	if e.TypeName == "" {
		return fmt.Sprintf("codec: %s: %s", e.Kind, e.Operation)
	}
	if e.Err != nil {
		return fmt.Sprintf("codec: %s: %s: %s: %v", e.Kind, e.TypeName, e.Operation, e.Err)
	}
	return fmt.Sprintf("codec: %s: %s: %s", e.Kind, e.TypeName, e.Operation)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, typeName, operation string, err error) *Error {
	return &Error{Kind: kind, TypeName: typeName, Operation: operation, Err: err}
}

func errUnknownType(typeName, operation string) *Error {
	return newError(UnknownType, typeName, operation, nil)
}

func errDisallowedType(typeName string) *Error {
	return newError(DisallowedType, typeName, "decode", nil)
}

func errSchemaMismatch(typeName, operation string, err error) *Error {
	return newError(SchemaMismatch, typeName, operation, err)
}

func errWireFormat(typeName, operation string, err error) *Error {
	return newError(WireFormat, typeName, operation, err)
}

func errReflection(typeName, operation string, err error) *Error {
	return newError(Reflection, typeName, operation, err)
}

func errStreamIO(operation string, err error) *Error {
	return newError(StreamIO, "", operation, err)
}
