// Package xmlwire implements the self-describing XML format adapter on top
// of encoding/xml's token stream rather than a DOM tree: elements are opened
// lazily so a polymorphic type attribute can be attached before the opening
// tag is actually emitted, and decoded by walking StartElement/EndElement/
// CharData tokens with a one-token pushback for lookahead.
package xmlwire

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/typeforge/codec/wire"
)

type wframe struct {
	name       string
	attrs      []xml.Attr
	opened     bool
	childIndex int
}

// Writer encodes values as self-describing XML.
type Writer struct {
	enc    *xml.Encoder
	naming wire.Naming
	stack  []*wframe
}

// NewWriter returns a wire.Writer producing XML rooted at naming.RootElem.
func NewWriter(w io.Writer, naming wire.Naming) *Writer {
	wr := &Writer{enc: xml.NewEncoder(w), naming: naming}
	wr.stack = []*wframe{{name: naming.RootElem}}
	return wr
}

var _ wire.Writer = (*Writer)(nil)

func (w *Writer) Named() bool { return true }

func (w *Writer) top() *wframe { return w.stack[len(w.stack)-1] }

func (w *Writer) ensureOpened() error {
	f := w.top()
	if f.opened {
		return nil
	}
	f.opened = true
	return w.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: f.name}, Attr: f.attrs})
}

func (w *Writer) push(name string) {
	w.stack = append(w.stack, &wframe{name: name})
}

func (w *Writer) pop() error {
	f := w.top()
	if err := w.ensureOpened(); err != nil {
		return err
	}
	w.stack = w.stack[:len(w.stack)-1]
	return w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: f.name}})
}

func (w *Writer) Close() error {
	if err := w.pop(); err != nil {
		return err
	}
	return w.enc.Flush()
}

// WriteNull marks the current element with null="true" and leaves it empty.
func (w *Writer) WriteNull() error {
	f := w.top()
	f.attrs = append(f.attrs, xml.Attr{Name: xml.Name{Local: "null"}, Value: "true"})
	return w.ensureOpened()
}

func (w *Writer) WriteNotNull() error { return nil }

func (w *Writer) WriteBool(v bool) error {
	if err := w.ensureOpened(); err != nil {
		return err
	}
	s := "false"
	if v {
		s = "true"
	}
	return w.enc.EncodeToken(xml.CharData(s))
}

func (w *Writer) WriteInt(v int64, bits int) error {
	if err := w.ensureOpened(); err != nil {
		return err
	}
	return w.enc.EncodeToken(xml.CharData(strconv.FormatInt(v, 10)))
}

func (w *Writer) WriteUint(v uint64, bits int) error {
	if err := w.ensureOpened(); err != nil {
		return err
	}
	return w.enc.EncodeToken(xml.CharData(strconv.FormatUint(v, 10)))
}

func (w *Writer) WriteFloat(v float64, bits int) error {
	if err := w.ensureOpened(); err != nil {
		return err
	}
	return w.enc.EncodeToken(xml.CharData(strconv.FormatFloat(v, 'g', -1, bits)))
}

func (w *Writer) WriteString(v string) error {
	if err := w.ensureOpened(); err != nil {
		return err
	}
	if v == "" {
		return nil
	}
	return w.enc.EncodeToken(xml.CharData(v))
}

// WriteTypeTag attaches the type attribute to the current element's not-yet-
// emitted opening tag. id == "" is still attached explicitly so decode can
// tell "tag present but equal to declared type" apart from "no tag written".
func (w *Writer) WriteTypeTag(id string) error {
	f := w.top()
	f.attrs = append(f.attrs, xml.Attr{Name: xml.Name{Local: w.naming.TypeAttr}, Value: id})
	return nil
}

func (w *Writer) StartObject() error { return w.ensureOpened() }
func (w *Writer) EndObject() error   { return nil }

func (w *Writer) BeginField(name string) error {
	if err := w.ensureOpened(); err != nil {
		return err
	}
	w.push(name)
	return nil
}

func (w *Writer) EndField() error { return w.pop() }

func (w *Writer) StartArray(n int) error { return w.ensureOpened() }
func (w *Writer) EndArray() error        { return nil }

func (w *Writer) BeginElem() error {
	if err := w.ensureOpened(); err != nil {
		return err
	}
	parent := w.top()
	idx := parent.childIndex
	parent.childIndex++
	w.push(fmt.Sprintf("%s%d", w.naming.EntryElem, idx))
	return nil
}

func (w *Writer) EndElem() error { return w.pop() }

// Reader decodes XML using encoding/xml's token stream with a pushback slot
// for single-token lookahead.
type Reader struct {
	dec      *xml.Decoder
	naming   wire.Naming
	frames   []rframe
	pushback []xml.Token
}

type rframe struct {
	name  string
	attrs []xml.Attr
}

// NewReader returns a wire.Reader over XML rooted at naming.RootElem.
func NewReader(r io.Reader, naming wire.Naming) (*Reader, error) {
	rd := &Reader{dec: xml.NewDecoder(r), naming: naming}
	tok, err := rd.next()
	if err != nil {
		return nil, err
	}
	start, ok := tok.(xml.StartElement)
	if !ok {
		return nil, fmt.Errorf("xmlwire: expected root element, got %T", tok)
	}
	rd.frames = append(rd.frames, rframe{name: start.Name.Local, attrs: start.Attr})
	return rd, nil
}

var _ wire.Reader = (*Reader)(nil)

func (r *Reader) Named() bool { return true }

func (r *Reader) Close() error {
	_, err := r.next() // consume the root's closing tag
	return err
}

func (r *Reader) top() rframe { return r.frames[len(r.frames)-1] }

func (r *Reader) next() (xml.Token, error) {
	if len(r.pushback) > 0 {
		tok := r.pushback[0]
		r.pushback = r.pushback[1:]
		return tok, nil
	}
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, err
		}
		if cd, ok := tok.(xml.CharData); ok && len(strings.TrimSpace(string(cd))) == 0 {
			continue
		}
		return xml.CopyToken(tok), nil
	}
}

func (r *Reader) pushBack(tok xml.Token) {
	r.pushback = append([]xml.Token{tok}, r.pushback...)
}

// IsNull reports whether the current element carries null="true". It
// consumes no token.
func (r *Reader) IsNull() (bool, error) {
	for _, a := range r.top().attrs {
		if a.Name.Local == "null" && a.Value == "true" {
			return true, nil
		}
	}
	return false, nil
}

func (r *Reader) ReadBool() (bool, error) {
	s, err := r.readText()
	if err != nil {
		return false, err
	}
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func (r *Reader) ReadInt(bits int) (int64, error) {
	s, err := r.readText()
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func (r *Reader) ReadUint(bits int) (uint64, error) {
	s, err := r.readText()
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

func (r *Reader) ReadFloat(bits int) (float64, error) {
	s, err := r.readText()
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, bits)
}

func (r *Reader) ReadString() (string, error) {
	return r.readText()
}

// readText returns the element's character content, or "" for an empty
// element, leaving the element's own closing tag unconsumed for EndField.
func (r *Reader) readText() (string, error) {
	tok, err := r.next()
	if err != nil {
		return "", err
	}
	if cd, ok := tok.(xml.CharData); ok {
		return string(cd), nil
	}
	r.pushBack(tok)
	return "", nil
}

func (r *Reader) ReadTypeTag() (string, bool, error) {
	for _, a := range r.top().attrs {
		if a.Name.Local == r.naming.TypeAttr {
			return a.Value, true, nil
		}
	}
	return "", false, nil
}

func (r *Reader) StartObject() error { return nil }
func (r *Reader) EndObject() error   { return nil }

func (r *Reader) BeginField() (string, bool, error) {
	tok, err := r.next()
	if err != nil {
		return "", false, err
	}
	switch t := tok.(type) {
	case xml.StartElement:
		r.frames = append(r.frames, rframe{name: t.Name.Local, attrs: t.Attr})
		return t.Name.Local, true, nil
	case xml.EndElement:
		r.pushBack(tok)
		return "", false, nil
	default:
		return "", false, fmt.Errorf("xmlwire: unexpected token %T in object", tok)
	}
}

func (r *Reader) EndField() error {
	tok, err := r.next()
	if err != nil {
		return err
	}
	if _, ok := tok.(xml.EndElement); !ok {
		return fmt.Errorf("xmlwire: expected end element, got %T", tok)
	}
	r.frames = r.frames[:len(r.frames)-1]
	return nil
}

func (r *Reader) StartArray() (int, error) { return -1, nil }
func (r *Reader) EndArray() error          { return nil }

func (r *Reader) BeginElem() (bool, error) {
	tok, err := r.next()
	if err != nil {
		return false, err
	}
	switch t := tok.(type) {
	case xml.StartElement:
		r.frames = append(r.frames, rframe{name: t.Name.Local, attrs: t.Attr})
		return true, nil
	case xml.EndElement:
		r.pushBack(tok)
		return false, nil
	default:
		return false, fmt.Errorf("xmlwire: unexpected token %T in array", tok)
	}
}

func (r *Reader) EndElem() error { return r.EndField() }
