package xmlwire

import (
	"bytes"
	"testing"

	"github.com/typeforge/codec/wire"
)

func TestProductFieldRoundTrip(t *testing.T) {
	naming := wire.DefaultXMLNaming()
	var buf bytes.Buffer
	w := NewWriter(&buf, naming)

	if err := w.StartObject(); err != nil {
		t.Fatalf("StartObject failed: %v", err)
	}
	if err := w.BeginField("name"); err != nil {
		t.Fatalf("BeginField failed: %v", err)
	}
	if err := w.WriteString("ada"); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}
	if err := w.EndField(); err != nil {
		t.Fatalf("EndField failed: %v", err)
	}
	if err := w.BeginField("age"); err != nil {
		t.Fatalf("BeginField failed: %v", err)
	}
	if err := w.WriteInt(36, 32); err != nil {
		t.Fatalf("WriteInt failed: %v", err)
	}
	if err := w.EndField(); err != nil {
		t.Fatalf("EndField failed: %v", err)
	}
	if err := w.EndObject(); err != nil {
		t.Fatalf("EndObject failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	want := `<_><name>ada</name><age>36</age></_>`
	if buf.String() != want {
		t.Fatalf("encoded document mismatch: got %s, want %s", buf.String(), want)
	}

	r, err := NewReader(&buf, naming)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if err := r.StartObject(); err != nil {
		t.Fatalf("StartObject failed: %v", err)
	}
	name, more, err := r.BeginField()
	if err != nil || !more || name != "name" {
		t.Fatalf("BeginField mismatch: got (%q,%v,%v)", name, more, err)
	}
	v, err := r.ReadString()
	if err != nil || v != "ada" {
		t.Errorf("ReadString mismatch: got (%q,%v), want (ada,nil)", v, err)
	}
	if err := r.EndField(); err != nil {
		t.Fatalf("EndField failed: %v", err)
	}
	name, more, err = r.BeginField()
	if err != nil || !more || name != "age" {
		t.Fatalf("BeginField mismatch: got (%q,%v,%v)", name, more, err)
	}
	age, err := r.ReadInt(32)
	if err != nil || age != 36 {
		t.Errorf("ReadInt mismatch: got (%d,%v), want (36,nil)", age, err)
	}
	if err := r.EndField(); err != nil {
		t.Fatalf("EndField failed: %v", err)
	}
	if _, more, err := r.BeginField(); err != nil || more {
		t.Fatalf("expected no more fields, got more=%v err=%v", more, err)
	}
	if err := r.EndObject(); err != nil {
		t.Fatalf("EndObject failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	t.Logf("Pass all the test for xmlwire product round trip!")
}

func TestTypeAttributeAttachesBeforeOpenTag(t *testing.T) {
	naming := wire.DefaultXMLNaming()
	var buf bytes.Buffer
	w := NewWriter(&buf, naming)

	if err := w.BeginField("pet"); err != nil {
		t.Fatalf("BeginField failed: %v", err)
	}
	if err := w.WriteTypeTag("Dog"); err != nil {
		t.Fatalf("WriteTypeTag failed: %v", err)
	}
	if err := w.StartObject(); err != nil {
		t.Fatalf("StartObject failed: %v", err)
	}
	if err := w.BeginField("bark"); err != nil {
		t.Fatalf("BeginField failed: %v", err)
	}
	if err := w.WriteBool(true); err != nil {
		t.Fatalf("WriteBool failed: %v", err)
	}
	if err := w.EndField(); err != nil {
		t.Fatalf("EndField failed: %v", err)
	}
	if err := w.EndObject(); err != nil {
		t.Fatalf("EndObject failed: %v", err)
	}
	if err := w.EndField(); err != nil {
		t.Fatalf("EndField failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	want := `<_><pet type="Dog"><bark>true</bark></pet></_>`
	if buf.String() != want {
		t.Fatalf("encoded document mismatch: got %s, want %s", buf.String(), want)
	}

	r, err := NewReader(&buf, naming)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	name, more, err := r.BeginField()
	if err != nil || !more || name != "pet" {
		t.Fatalf("BeginField mismatch: got (%q,%v,%v)", name, more, err)
	}
	id, present, err := r.ReadTypeTag()
	if err != nil || !present || id != "Dog" {
		t.Fatalf("ReadTypeTag mismatch: got (%q,%v,%v)", id, present, err)
	}
	if err := r.StartObject(); err != nil {
		t.Fatalf("StartObject failed: %v", err)
	}
	fieldName, more, err := r.BeginField()
	if err != nil || !more || fieldName != "bark" {
		t.Fatalf("BeginField mismatch: got (%q,%v,%v)", fieldName, more, err)
	}
	bark, err := r.ReadBool()
	if err != nil || !bark {
		t.Errorf("ReadBool mismatch: got (%v,%v), want (true,nil)", bark, err)
	}
	if err := r.EndField(); err != nil {
		t.Fatalf("EndField failed: %v", err)
	}
	if err := r.EndObject(); err != nil {
		t.Fatalf("EndObject failed: %v", err)
	}
	if err := r.EndField(); err != nil {
		t.Fatalf("EndField failed: %v", err)
	}
}

func TestArrayIndexedElements(t *testing.T) {
	naming := wire.DefaultXMLNaming()
	var buf bytes.Buffer
	w := NewWriter(&buf, naming)

	if err := w.StartArray(-1); err != nil {
		t.Fatalf("StartArray failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := w.BeginElem(); err != nil {
			t.Fatalf("BeginElem failed: %v", err)
		}
		if err := w.WriteInt(int64(i), 32); err != nil {
			t.Fatalf("WriteInt failed: %v", err)
		}
		if err := w.EndElem(); err != nil {
			t.Fatalf("EndElem failed: %v", err)
		}
	}
	if err := w.EndArray(); err != nil {
		t.Fatalf("EndArray failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	want := `<_><_0>0</_0><_1>1</_1></_>`
	if buf.String() != want {
		t.Fatalf("encoded document mismatch: got %s, want %s", buf.String(), want)
	}

	r, err := NewReader(&buf, naming)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if _, err := r.StartArray(); err != nil {
		t.Fatalf("StartArray failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		more, err := r.BeginElem()
		if err != nil || !more {
			t.Fatalf("BeginElem failed: more=%v err=%v", more, err)
		}
		v, err := r.ReadInt(32)
		if err != nil || v != int64(i) {
			t.Errorf("ReadInt mismatch: got (%d,%v), want (%d,nil)", v, err, i)
		}
		if err := r.EndElem(); err != nil {
			t.Fatalf("EndElem failed: %v", err)
		}
	}
	if more, err := r.BeginElem(); err != nil || more {
		t.Fatalf("expected no more elements, got more=%v err=%v", more, err)
	}
	if err := r.EndArray(); err != nil {
		t.Fatalf("EndArray failed: %v", err)
	}
}
