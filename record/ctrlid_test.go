package record

import "testing"

func TestCtrlIDLayout(t *testing.T) {
	tests := []struct {
		id    CtrlID
		bytes string
	}{
		{CtrlFootnote, "  nf"},
		{CtrlEndnote, "  ne"},
		{CtrlHyperlink, "klh%"},
		{CtrlMemo, "em%%"},
		{CtrlGSO, " osg"},
	}

	for _, tt := range tests {
		if got := CtrlIDOf([]byte(tt.bytes)); got != tt.id {
			t.Errorf("CtrlIDOf(%q) = %#x, want %#x", tt.bytes, got, tt.id)
		}
		if tt.id.String() != tt.bytes {
			t.Errorf("String() = %q, want %q", tt.id.String(), tt.bytes)
		}
	}
}

func TestCtrlIDPlausible(t *testing.T) {
	if !CtrlHyperlink.Plausible() {
		t.Error("hyperlink id should be plausible")
	}
	if !MakeCtrlID('t', 'b', 'l', ' ').Plausible() {
		t.Error("table id should be plausible")
	}
	if MakeCtrlID('a', 0x00, 'b', 'c').Plausible() {
		t.Error("id with NUL byte should not be plausible")
	}
	if CtrlID(0xAC00AC00).Plausible() {
		t.Error("id with high bytes should not be plausible")
	}
}

func TestCtrlIDAtBounds(t *testing.T) {
	data := []byte{0, 0, ' ', ' ', 'n', 'f'}
	if got := CtrlIDAt(data, 2); got != CtrlFootnote {
		t.Errorf("CtrlIDAt(2) = %#x, want footnote", got)
	}
	if got := CtrlIDAt(data, 3); got != 0 {
		t.Errorf("CtrlIDAt(3) = %#x, want 0", got)
	}
	if CtrlFootnote.IsNote() != true || CtrlMemo.IsNote() {
		t.Error("IsNote misclassified")
	}
}
