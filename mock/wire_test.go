package mock

import (
	"strings"
	"testing"
)

func TestWireRoundTrip(t *testing.T) {
	shared := NewObject()
	o := NewObject()
	o.SetMember("x", shared.ToValue())
	o.SetMember("y", shared.ToValue())
	o.SetMember("label", Constant("widget"))
	o.SetMember("count", Constant(int64(12)))
	o.SetMember("on", Constant(true))
	o.SetMember("make", NewFunction("make", nil).ToValue())

	data, err := MarshalMetadata(GetMetadata(o.ToValue()))
	if err != nil {
		t.Fatalf("MarshalMetadata: %v", err)
	}

	n, err := UnmarshalMetadata(data)
	if err != nil {
		t.Fatalf("UnmarshalMetadata: %v", err)
	}

	out, err := GenerateFromMetadata(n)
	if err != nil {
		t.Fatalf("GenerateFromMetadata: %v", err)
	}
	mo := out.AsObject()

	x, _ := mo.Get("x")
	y, _ := mo.Get("y")
	if !x.Is(y) {
		t.Error("shared reference lost across the wire")
	}
	if mv, _ := mo.Get("label"); !mv.Is(Constant("widget")) {
		t.Errorf("label = %v, want widget", mv)
	}
	if mv, _ := mo.Get("count"); !mv.Is(Constant(int64(12))) {
		t.Errorf("count = %v, want 12", mv)
	}
	if mv, _ := mo.Get("on"); !mv.Is(Constant(true)) {
		t.Errorf("on = %v, want true", mv)
	}
	if mv, _ := mo.Get("make"); !IsMockFunction(mv) {
		t.Error("function member lost across the wire")
	}
}

func TestWireDeterministic(t *testing.T) {
	o := NewObject()
	o.SetMember("b", Constant(2))
	o.SetMember("a", Constant(1))

	first, err := MarshalMetadata(GetMetadata(o.ToValue()))
	if err != nil {
		t.Fatal(err)
	}
	second, err := MarshalMetadata(GetMetadata(o.ToValue()))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("canonical encoding is not deterministic")
	}
}

func TestWireDropsLivePayloads(t *testing.T) {
	o := NewObject()
	o.SetMember("coll", NewCollection(map[string]int{"a": 1}))

	data, err := MarshalMetadata(GetMetadata(o.ToValue()))
	if err != nil {
		t.Fatalf("MarshalMetadata: %v", err)
	}
	n, err := UnmarshalMetadata(data)
	if err != nil {
		t.Fatalf("UnmarshalMetadata: %v", err)
	}

	child := n.Members["coll"]
	if child == nil || child.Type != TypeCollection {
		t.Fatal("collection node lost")
	}
	if box := child.Value.AsCollection(); box == nil || box.Data != nil {
		t.Error("live collection payload should not cross the boundary")
	}
}

func TestWireNullAndUndefined(t *testing.T) {
	o := NewObject()
	o.SetMember("nothing", Null)
	o.SetMember("missing", Undefined)

	data, err := MarshalMetadata(GetMetadata(o.ToValue()))
	if err != nil {
		t.Fatal(err)
	}
	n, err := UnmarshalMetadata(data)
	if err != nil {
		t.Fatal(err)
	}
	if n.Members["nothing"].Value.Tag != TagNull {
		t.Error("null did not round-trip")
	}
	if n.Members["missing"].Value.Tag != TagUndefined {
		t.Error("undefined did not round-trip")
	}
}

func TestWireMarshalNil(t *testing.T) {
	if _, err := MarshalMetadata(nil); err == nil {
		t.Fatal("expected error marshaling nil metadata")
	}
}

func TestWireUnmarshalGarbage(t *testing.T) {
	_, err := UnmarshalMetadata([]byte{0xff, 0x00, 0x13})
	if err == nil {
		t.Fatal("expected error for garbage input")
	}
	if !strings.Contains(err.Error(), "unmarshal metadata") {
		t.Errorf("error %q lacks context", err)
	}
}
