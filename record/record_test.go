package record

import "testing"

func arenaOf(levels ...int) Arena {
	a := make(Arena, len(levels))
	for i, l := range levels {
		a[i] = Record{Tag: TagParaText, Level: l, Payload: []byte{0}}
	}
	return a
}

func TestSubtreeEnd(t *testing.T) {
	a := arenaOf(0, 1, 2, 2, 1, 0, 1)

	tests := []struct {
		i, want int
	}{
		{0, 5},
		{1, 4},
		{2, 3},
		{4, 5},
		{5, 7},
		{6, 7},
		{-1, 7},
		{9, 7},
	}
	for _, tt := range tests {
		if got := a.SubtreeEnd(tt.i); got != tt.want {
			t.Errorf("SubtreeEnd(%d) = %d, want %d", tt.i, got, tt.want)
		}
	}
}

func TestChildren(t *testing.T) {
	a := arenaOf(0, 1, 2, 1, 2, 2, 0)
	got := a.Children(0)
	want := []int{1, 3}
	if len(got) != len(want) {
		t.Fatalf("Children(0) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Children(0) = %v, want %v", got, want)
		}
	}
	if kids := a.Children(6); kids != nil {
		t.Errorf("Children(6) = %v, want nil", kids)
	}
}

func TestFind(t *testing.T) {
	a := Arena{
		{Tag: TagCtrlHeader, Payload: []byte("  nf")},
		{Tag: TagCtrlHeader, Payload: []byte("  ne")},
		{Tag: TagParaText, Payload: []byte("  nf")},
		{Tag: TagCtrlHeader, Payload: []byte("  nf")},
		{Tag: TagMemoList, Payload: []byte{1}},
	}

	if got := a.Find(TagCtrlHeader, CtrlFootnote, 2); got != 3 {
		t.Errorf("second footnote control at %d, want 3", got)
	}
	if got := a.Find(TagCtrlHeader, CtrlEndnote, 1); got != 1 {
		t.Errorf("first endnote control at %d, want 1", got)
	}
	if got := a.Find(TagCtrlHeader, CtrlFootnote, 3); got != -1 {
		t.Errorf("third footnote control at %d, want -1", got)
	}
	if got := a.Find(TagMemoList, 0, 1); got != 4 {
		t.Errorf("memo list at %d, want 4", got)
	}
	if got := a.Find(TagMemoList, 0, 0); got != -1 {
		t.Errorf("Find with nth=0 = %d, want -1", got)
	}
}

func TestUint16(t *testing.T) {
	r := Record{Payload: []byte{0x34, 0x12, 0xFF}}
	if v, ok := r.Uint16(0); !ok || v != 0x1234 {
		t.Errorf("Uint16(0) = %#x, %v", v, ok)
	}
	if _, ok := r.Uint16(2); ok {
		t.Error("Uint16(2) should not fit")
	}
}
