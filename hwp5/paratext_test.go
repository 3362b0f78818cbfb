package hwp5

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/tsawler/hwp/internal/hwptest"
	"github.com/tsawler/hwp/record"
)

func TestCharDecoders(t *testing.T) {
	tests := []struct {
		name  string
		text  *hwptest.Text
		main  string
		cell  string
		plain string // "-" skips the plain decoder
	}{
		{"plain text", hwptest.NewText("Hello 한글"), "Hello 한글", "Hello 한글", "Hello 한글"},
		{"tab", hwptest.NewText("a").Units(9).Str("b"), "a\tb", "a b", "a b"},
		{"cjk ideographs", hwptest.NewText("漢字x"), "漢字x", "x", "漢字x"},
		{"outside allow list", hwptest.NewText("Жx€→"), "x→", "x→", "x→"},
		{"line breaks ignored", hwptest.NewText("a").Units(10).Str("b").Units(13), "ab", "ab", "ab"},
		{"object anchor", hwptest.NewText("a").TableAnchor().Str("b"), "ab", "ab", "-"},
		{"object with implausible id", hwptest.NewText("").Units(11).Str("xy"), "xy", "xy", "xy"},
		{"object cut off", hwptest.NewText("").Units(11).Str("A"), "A", "A", "A"},
		{"inline object", hwptest.NewText("").Units(12, 'a', 'b', 'c', 'd').Str("Z"), "Z", "Z", "abcdZ"},
		{"inline control", hwptest.NewText("").Units(5, 0, 0, 0, 0).Str("Q"), "Q", "Q", "Q"},
		{"field start before text", hwptest.NewText("").Units(2).Str("AB"), "AB", "AB", "AB"},
		{"field start before last unit", hwptest.NewText("").Units(2).Str("A"), "", "", ""},
		{"field start with extension", hwptest.NewText("").Ctrl(2, hwptest.CtrlSection).Str("Z"), "Z", "Z", "Z"},
		{"trailing field start", hwptest.NewText("A").Units(2), "A", "A", "A"},
		{"code 16 before text", hwptest.NewText("").Units(16).Str("AB"), "AB", "AB", "AB"},
		{"code 16 with extension", hwptest.NewText("").Units(16, 1, 0, 0, 0, 0, 0).Str("B"), "B", "B", "B"},
		{"field footnote", hwptest.NewText("a").Footnote().Str("b"), "ab", "ab", "ab"},
		{"field implausible id", hwptest.NewText("").Units(17).Str("xy"), "xy", "xy", "xy"},
		{"field cut off", hwptest.NewText("a").Units(17).Str("b"), "a", "a", "a"},
		{"hyperlink field", hwptest.NewText("see ").Hyperlink("A").Str("!"), "see A!", "see A!", "see A!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.text.Bytes()
			if got := mainDecoder.decode(data, nil); got != tt.main {
				t.Errorf("main = %q, want %q", got, tt.main)
			}
			if got := cellDecoder.decode(data, nil); got != tt.cell {
				t.Errorf("cell = %q, want %q", got, tt.cell)
			}
			if tt.plain == "-" {
				return
			}
			if got := plainDecoder.decode(data, nil); got != tt.plain {
				t.Errorf("plain = %q, want %q", got, tt.plain)
			}
		})
	}
}

func TestDecodeOddLength(t *testing.T) {
	data := append(hwptest.NewText("ab").Bytes(), 'c')
	if got := mainDecoder.decode(data, nil); got != "ab" {
		t.Errorf("decode = %q, want %q", got, "ab")
	}
	if got := mainDecoder.decode(nil, nil); got != "" {
		t.Errorf("decode(nil) = %q", got)
	}
}

func TestDecodeMarkers(t *testing.T) {
	data := hwptest.NewText("x").Footnote().Str("y").Picture().Str("z").Bytes()
	calls := 0
	m := &markers{
		notes: map[int]string{2: "[^1]"},
		image: func() string {
			calls++
			return "<img>"
		},
	}

	if got := mainDecoder.decode(data, m); got != "x[^1]y<img>z" {
		t.Errorf("main = %q", got)
	}
	if got := cellDecoder.decode(data, m); got != "x[^1]y<img>z" {
		t.Errorf("cell = %q", got)
	}
	if calls != 2 {
		t.Errorf("image callback called %d times, want 2", calls)
	}
}

func TestFindFieldMarkers(t *testing.T) {
	data := hwptest.NewText("ab").Footnote().Str("c").Endnote().Footnote().Bytes()

	if got := findFieldMarkers(data, record.CtrlFootnote); !reflect.DeepEqual(got, []int{4, 34}) {
		t.Errorf("footnotes at %v, want [4 34]", got)
	}
	if got := findFieldMarkers(data, record.CtrlEndnote); !reflect.DeepEqual(got, []int{20}) {
		t.Errorf("endnotes at %v, want [20]", got)
	}
	if got := findFieldMarkers(data[:8], record.CtrlFootnote); got != nil {
		t.Errorf("cut off marker found at %v", got)
	}
}

func TestMemoField(t *testing.T) {
	data := hwptest.NewText("A").Memo("ref").Str("B").Bytes()

	found := findMemoMarkers(data)
	if len(found) != 1 || found[0].pos != 2 || found[0].ref != "ref" {
		t.Fatalf("findMemoMarkers = %+v", found)
	}
	if got := skipMemoField(data, 2); got != 36 {
		t.Errorf("skipMemoField = %d, want 36", got)
	}

	m := &markers{memos: map[int]memoRef{2: {ref: "ref", token: "[MEMO:1]"}}}
	if got := mainDecoder.decode(data, m); got != "Aref[MEMO:1]B" {
		t.Errorf("decode = %q", got)
	}
	if got := plainDecoder.decode(data, nil); got != "ArefB" {
		t.Errorf("plain = %q", got)
	}
}

func TestSkipMemoFieldRepeatedEnd(t *testing.T) {
	data := hwptest.NewText("").Memo("r").Units(4).Str("B").Bytes()
	m := &markers{memos: map[int]memoRef{0: {ref: "r", token: "[MEMO:1]"}}}
	if got := mainDecoder.decode(data, m); got != "r[MEMO:1]B" {
		t.Errorf("decode = %q", got)
	}
}

func TestMemoRefTextSkipsNestedStart(t *testing.T) {
	data := hwptest.NewText("").Ctrl(3, record.CtrlMemo).Units(3).Str("ab").FieldEnd().Bytes()
	found := findMemoMarkers(data)
	if len(found) != 1 || found[0].ref != "ab" {
		t.Errorf("findMemoMarkers = %+v", found)
	}
}

func TestCollectAnchors(t *testing.T) {
	tests := []struct {
		name string
		text *hwptest.Text
		want []string
	}{
		{"two links", hwptest.NewText("go ").Hyperlink("here").Str(" now ").Hyperlink("B"), []string{"here", "B"}},
		{"empty anchor dropped", hwptest.NewText("").Hyperlink("").Hyperlink("x"), []string{"x"}},
		{"memo field ignored", hwptest.NewText("").Memo("m"), nil},
		{"no fields", hwptest.NewText("plain").TableAnchor(), nil},
		{"field start cut off", hwptest.NewText("a").Units(3), nil},
		{"unterminated anchor", hwptest.NewText("").Ctrl(3, record.CtrlHyperlink).Str("open"), []string{"open"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectAnchors(tt.text.Bytes())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("collectAnchors = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestDecodersTerminate feeds random payloads through every scanner.
func TestDecodersTerminate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 500; n++ {
		data := make([]byte, rng.Intn(96))
		rng.Read(data)
		// Bias toward control codes.
		for i := 0; i+1 < len(data); i += 2 {
			if rng.Intn(3) == 0 {
				data[i] = byte(rng.Intn(32))
				data[i+1] = 0
			}
		}

		mainDecoder.decode(data, nil)
		cellDecoder.decode(data, nil)
		plainDecoder.decode(data, nil)
		collectAnchors(data)
		for _, mk := range findMemoMarkers(data) {
			skipMemoField(data, mk.pos)
		}
		findFieldMarkers(data, record.CtrlFootnote)
	}
}

func TestAllowLists(t *testing.T) {
	tests := []struct {
		c       uint16
		lenient bool
		strict  bool
	}{
		{'A', true, true},
		{0x7F, false, false},
		{0xE9, true, true},
		{0x1100, true, true},
		{0x2192, true, true},
		{0x2460, true, true},
		{0x4E00, true, false},
		{0x9FFF, true, false},
		{0xAC00, true, true},
		{0xD7B0, false, false},
		{0xFF01, true, true},
		{0xFFF0, false, false},
	}
	for _, tt := range tests {
		if got := lenientChar(tt.c); got != tt.lenient {
			t.Errorf("lenientChar(%#x) = %v", tt.c, got)
		}
		if got := strictChar(tt.c); got != tt.strict {
			t.Errorf("strictChar(%#x) = %v", tt.c, got)
		}
	}
}
