package gledge

import "testing"

func TestLayoutValidate(t *testing.T) {
	for _, test := range []struct {
		name string
		l    Layout
		ok   bool
	}{
		{name: "blob", l: VariantBlob.Layout(), ok: true},
		{name: "capsule", l: VariantCapsule.Layout(), ok: true},
		{name: "undefined", l: variantUndefined.Layout(), ok: false},
		{name: "overlap", l: Layout{Stride: 4, Attribs: []Attrib{
			{Name: "a", Components: 2, Offset: 0},
			{Name: "b", Components: 2, Offset: 1},
		}}},
		{name: "outofstride", l: Layout{Stride: 4, Attribs: []Attrib{
			{Name: "a", Components: 3, Offset: 2},
		}}},
		{name: "duplicate", l: Layout{Stride: 4, Attribs: []Attrib{
			{Name: "a", Components: 2, Offset: 0},
			{Name: "a", Components: 2, Offset: 2},
		}}},
		{name: "components", l: Layout{Stride: 8, Attribs: []Attrib{
			{Name: "a", Components: 5, Offset: 0},
		}}},
		{name: "gap", l: Layout{Stride: 6, Attribs: []Attrib{
			{Name: "a", Components: 2, Offset: 0},
			{Name: "b", Components: 1, Offset: 5},
		}}, ok: true},
	} {
		err := test.l.Validate()
		if (err == nil) != test.ok {
			t.Errorf("%s: want ok=%v, got err=%v", test.name, test.ok, err)
		}
	}
}

func TestLayoutBytes(t *testing.T) {
	l := VariantCapsule.Layout()
	if l.StrideBytes() != 24 {
		t.Errorf("want capsule stride 24 bytes, got %d", l.StrideBytes())
	}
	a, ok := l.Attrib(AttribShape)
	if !ok {
		t.Fatal("capsule layout missing shape attribute")
	}
	if a.OffsetBytes() != 8 || a.Components != 4 {
		t.Errorf("unexpected shape attribute %+v", a)
	}
	if _, ok := l.Attrib("nope"); ok {
		t.Error("found nonexistent attribute")
	}
}
