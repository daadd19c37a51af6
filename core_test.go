package codec

import (
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

type point struct {
	X int
	Y int
}

type person struct {
	Name string
	Age  int32
	Tags []string
}

type animal interface {
	Sound() string
}

type dog struct {
	Bark bool
}

func (d dog) Sound() string { return "woof" }

type cat struct {
	Meow bool
}

func (c cat) Sound() string { return "meow" }

type pet struct {
	Name string
	Kind animal
}

func allCores(t *testing.T, opts ...Option) []*Core {
	return []*Core{
		NewJSONCore(opts...),
		NewXMLCore(opts...),
		NewByteCore(opts...),
	}
}

func TestPrimitiveRoundTrip(t *testing.T) {
	for _, c := range allCores(t) {
		data, err := EncodeToBytes[int32](c, 42)
		if err != nil {
			t.Fatalf("encode int32 failed: %v", err)
		}
		got, err := DecodeFromBytes[int32](c, data)
		if err != nil {
			t.Fatalf("decode int32 failed: %v", err)
		}
		if got != 42 {
			t.Errorf("int32 mismatch: got %d, want 42", got)
		}

		sdata, err := EncodeToBytes[string](c, "hello")
		if err != nil {
			t.Fatalf("encode string failed: %v", err)
		}
		sgot, err := DecodeFromBytes[string](c, sdata)
		if err != nil {
			t.Fatalf("decode string failed: %v", err)
		}
		if sgot != "hello" {
			t.Errorf("string mismatch: got %s, want hello", sgot)
		}
	}
}

func TestStructRoundTrip(t *testing.T) {
	want := person{Name: "ada", Age: 36, Tags: []string{"math", "computing"}}
	for _, c := range allCores(t) {
		data, err := EncodeToBytes[person](c, want)
		if err != nil {
			t.Fatalf("encode person failed: %v", err)
		}
		got, err := DecodeFromBytes[person](c, data)
		if err != nil {
			t.Fatalf("decode person failed: %v", err)
		}
		if got.Name != want.Name || got.Age != want.Age || len(got.Tags) != len(want.Tags) {
			t.Fatalf("person mismatch: got %+v, want %+v", got, want)
		}
		for i := range want.Tags {
			if got.Tags[i] != want.Tags[i] {
				t.Errorf("tag %d mismatch: got %s, want %s", i, got.Tags[i], want.Tags[i])
			}
		}
	}
}

func TestSliceOfIntRoundTrip(t *testing.T) {
	want := []int32{1, 2, 3}
	for _, c := range allCores(t) {
		data, err := EncodeToBytes[[]int32](c, want)
		if err != nil {
			t.Fatalf("encode slice failed: %v", err)
		}
		got, err := DecodeFromBytes[[]int32](c, data)
		if err != nil {
			t.Fatalf("decode slice failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("element %d mismatch: got %d, want %d", i, got[i], want[i])
			}
		}
	}
}

func TestStringKeyedMapRoundTrip(t *testing.T) {
	want := map[string]int32{"a": 1, "b": 2}
	for _, c := range allCores(t) {
		data, err := EncodeToBytes[map[string]int32](c, want)
		if err != nil {
			t.Fatalf("encode map failed: %v", err)
		}
		got, err := DecodeFromBytes[map[string]int32](c, data)
		if err != nil {
			t.Fatalf("decode map failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("map length mismatch: got %d, want %d", len(got), len(want))
		}
		for k, v := range want {
			if got[k] != v {
				t.Errorf("key %s mismatch: got %d, want %d", k, got[k], v)
			}
		}
	}
}

func TestNonStringKeyedMapRoundTrip(t *testing.T) {
	want := map[int32]string{1: "one", 2: "two"}
	for _, c := range allCores(t) {
		data, err := EncodeToBytes[map[int32]string](c, want)
		if err != nil {
			t.Fatalf("encode map failed: %v", err)
		}
		got, err := DecodeFromBytes[map[int32]string](c, data)
		if err != nil {
			t.Fatalf("decode map failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("map length mismatch: got %d, want %d", len(got), len(want))
		}
		for k, v := range want {
			if got[k] != v {
				t.Errorf("key %d mismatch: got %s, want %s", k, got[k], v)
			}
		}
	}
}

func TestPointerRoundTrip(t *testing.T) {
	n := int32(7)
	for _, c := range allCores(t) {
		data, err := EncodeToBytes[*int32](c, &n)
		if err != nil {
			t.Fatalf("encode *int32 failed: %v", err)
		}
		got, err := DecodeFromBytes[*int32](c, data)
		if err != nil {
			t.Fatalf("decode *int32 failed: %v", err)
		}
		if got == nil || *got != n {
			t.Errorf("*int32 mismatch: got %v, want %d", got, n)
		}

		var nilPtr *int32
		data, err = EncodeToBytes[*int32](c, nilPtr)
		if err != nil {
			t.Fatalf("encode nil *int32 failed: %v", err)
		}
		got, err = DecodeFromBytes[*int32](c, data)
		if err != nil {
			t.Fatalf("decode nil *int32 failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil pointer round trip, got %v", got)
		}
	}
}

func TestPolymorphicInterfaceDispatch(t *testing.T) {
	for _, c := range allCores(t,
		WithAllowedType(reflect.TypeOf(dog{})),
		WithAllowedType(reflect.TypeOf(cat{})),
	) {
		want := pet{Name: "fido", Kind: dog{Bark: true}}
		data, err := EncodeToBytes[pet](c, want)
		if err != nil {
			t.Fatalf("encode pet failed: %v", err)
		}
		got, err := DecodeFromBytes[pet](c, data)
		if err != nil {
			t.Fatalf("decode pet failed: %v", err)
		}
		d, ok := got.Kind.(dog)
		if !ok {
			t.Fatalf("expected dog, got %T", got.Kind)
		}
		if !d.Bark {
			t.Errorf("dog.Bark mismatch: got false, want true")
		}
	}
}

func TestDisallowedTypeRejected(t *testing.T) {
	for _, c := range allCores(t) {
		data, err := EncodeToBytes[pet](c, pet{Name: "rex", Kind: dog{Bark: false}})
		if err != nil {
			t.Fatalf("encode pet failed: %v", err)
		}
		_, err = DecodeFromBytes[pet](c, data)
		if err == nil {
			t.Fatalf("expected decode to fail for a type not on the allow-list")
		}
		var codecErr *Error
		if ce, ok := err.(*Error); ok {
			codecErr = ce
		} else {
			t.Fatalf("expected *codec.Error, got %T", err)
		}
		if codecErr.Kind != DisallowedType {
			t.Errorf("error kind mismatch: got %v, want %v", codecErr.Kind, DisallowedType)
		}
	}
}

func TestStringProxyRoundTrip(t *testing.T) {
	want := new(big.Int).SetInt64(123456789)
	id := uuid.New()
	for _, c := range allCores(t) {
		data, err := EncodeToBytes[*big.Int](c, want)
		if err != nil {
			t.Fatalf("encode big.Int failed: %v", err)
		}
		got, err := DecodeFromBytes[*big.Int](c, data)
		if err != nil {
			t.Fatalf("decode big.Int failed: %v", err)
		}
		if got.Cmp(want) != 0 {
			t.Errorf("big.Int mismatch: got %s, want %s", got.String(), want.String())
		}

		udata, err := EncodeToBytes[uuid.UUID](c, id)
		if err != nil {
			t.Fatalf("encode uuid failed: %v", err)
		}
		ugot, err := DecodeFromBytes[uuid.UUID](c, udata)
		if err != nil {
			t.Fatalf("decode uuid failed: %v", err)
		}
		if ugot != id {
			t.Errorf("uuid mismatch: got %s, want %s", ugot, id)
		}
	}
}

func TestArgArrayRoundTrip(t *testing.T) {
	want := time.Unix(0, 1_700_000_000_000_000_000)
	for _, c := range allCores(t) {
		data, err := EncodeToBytes[time.Time](c, want)
		if err != nil {
			t.Fatalf("encode time.Time failed: %v", err)
		}
		got, err := DecodeFromBytes[time.Time](c, data)
		if err != nil {
			t.Fatalf("decode time.Time failed: %v", err)
		}
		if !got.Equal(want) {
			t.Errorf("time.Time mismatch: got %s, want %s", got, want)
		}
	}
}

func TestNamedPrimitiveRoundTrip(t *testing.T) {
	type celsius float64
	want := celsius(36.6)
	for _, c := range allCores(t) {
		data, err := EncodeToBytes[celsius](c, want)
		if err != nil {
			t.Fatalf("encode celsius failed: %v", err)
		}
		got, err := DecodeFromBytes[celsius](c, data)
		if err != nil {
			t.Fatalf("decode celsius failed: %v", err)
		}
		if got != want {
			t.Errorf("celsius mismatch: got %v, want %v", got, want)
		}
	}
	t.Logf("Pass all the test for named primitive fallback!")
}

func TestGzipByteStreamRoundTrip(t *testing.T) {
	c := NewByteCore(WithGzipByteStream())
	want := person{Name: "grace", Age: 85, Tags: []string{"cobol"}}
	data, err := EncodeToBytes[person](c, want)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeFromBytes[person](c, data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Name != want.Name || got.Age != want.Age {
		t.Errorf("person mismatch: got %+v, want %+v", got, want)
	}
}
