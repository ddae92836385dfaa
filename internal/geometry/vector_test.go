package geometry

import "testing"

func TestVector2D_Add(t *testing.T) {
	got := New(1, 2).Add(New(3, 4))
	if got != New(4, 6) {
		t.Fatalf("Add = %v, want {4 6}", got)
	}
}

func TestVector2D_Sub(t *testing.T) {
	got := New(1, 2).Sub(New(3, 4))
	if got != New(-2, -2) {
		t.Fatalf("Sub = %v, want {-2 -2}", got)
	}
}

func TestVector2D_Max(t *testing.T) {
	got := New(1, 4).Max(New(3, 2))
	if got != New(3, 4) {
		t.Fatalf("Max = %v, want {3 4}", got)
	}
}
