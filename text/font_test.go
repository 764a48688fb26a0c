package text

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/canvas/internal/css"
)

func TestParseFont(t *testing.T) {
	tests := []struct {
		src  string
		want Font
	}{
		{"10px sans-serif", DefaultFont()},
		{
			"italic small-caps bold condensed 16px/2 Arial, sans-serif",
			Font{Style: StyleItalic, Variant: VariantSmallCaps, Weight: 700, Stretch: StretchCondensed, Size: 16, Families: []string{"Arial", "sans-serif"}},
		},
		{`12pt "Times New Roman"`, Font{Weight: 400, Stretch: StretchNormal, Size: 16, Families: []string{"Times New Roman"}}},
		{"300 12px Go Mono", Font{Weight: 300, Stretch: StretchNormal, Size: 12, Families: []string{"Go Mono"}}},
		{"normal normal 2em SERIF", Font{Weight: 400, Stretch: StretchNormal, Size: 20, Families: []string{"serif"}}},
		{"50% monospace", Font{Weight: 400, Stretch: StretchNormal, Size: 5, Families: []string{"monospace"}}},
		{"medium serif", Font{Weight: 400, Stretch: StretchNormal, Size: 16, Families: []string{"serif"}}},
		{"oblique lighter 1in/normal a", Font{Style: StyleOblique, Weight: 100, Stretch: StretchNormal, Size: 96, Families: []string{"a"}}},
	}
	for _, tt := range tests {
		got, err := ParseFont(tt.src)
		if err != nil {
			t.Errorf("ParseFont(%q) error: %v", tt.src, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseFont(%q) mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestParseFontErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"12px",
		"serif",
		"bold bold 12px serif",
		"12 serif",
		"-1px serif",
		"12px inherit",
		"12px serif,",
		"12px/ serif",
		"1001 12px serif",
	} {
		_, err := ParseFont(src)
		var se *css.SyntaxError
		if !errors.As(err, &se) || se.Kind != css.KindFont {
			t.Errorf("ParseFont(%q) error = %v, want font *css.SyntaxError", src, err)
		}
	}
}

func TestFontString(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"10px sans-serif", "10px sans-serif"},
		{"bold italic 12px Times New Roman, serif", `italic bold 12px "Times New Roman", serif`},
		{"small-caps 600 expanded 8px x", "small-caps 600 expanded 8px x"},
		{`12px "3D"`, `12px "3D"`},
	}
	for _, tt := range tests {
		f, err := ParseFont(tt.src)
		if err != nil {
			t.Fatalf("ParseFont(%q): %v", tt.src, err)
		}
		if got := f.String(); got != tt.want {
			t.Errorf("ParseFont(%q).String() = %q, want %q", tt.src, got, tt.want)
		}
		again, err := ParseFont(f.String())
		if err != nil {
			t.Errorf("reparsing %q: %v", f.String(), err)
			continue
		}
		if diff := cmp.Diff(f, again); diff != "" {
			t.Errorf("round trip of %q mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestParseUnicodeRange(t *testing.T) {
	got, err := ParseUnicodeRange("U+0000-00FF, u+4??, U+20AC")
	if err != nil {
		t.Fatal(err)
	}
	want := []UnicodeRange{{0, 0xff}, {0x400, 0x4ff}, {0x20ac, 0x20ac}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseUnicodeRange mismatch (-want +got):\n%s", diff)
	}
	for _, src := range []string{"", "U+00FF-0000", "U+110000", "latin"} {
		if _, err := ParseUnicodeRange(src); err == nil {
			t.Errorf("ParseUnicodeRange(%q) succeeded, want error", src)
		}
	}
}

func TestStyleKeywords(t *testing.T) {
	if a, ok := ParseTextAlign("center"); !ok || a != AlignCenter {
		t.Errorf("ParseTextAlign(center) = %v, %v", a, ok)
	}
	if _, ok := ParseTextAlign("CENTER"); ok {
		t.Error("ParseTextAlign accepted CENTER")
	}
	if b, ok := ParseTextBaseline("hanging"); !ok || b.String() != "hanging" {
		t.Errorf("ParseTextBaseline(hanging) = %v, %v", b, ok)
	}
	tests := []struct {
		align TextAlign
		dir   Direction
		want  TextAlign
	}{
		{AlignStart, DirectionInherit, AlignLeft},
		{AlignStart, DirectionRTL, AlignRight},
		{AlignEnd, DirectionLTR, AlignRight},
		{AlignEnd, DirectionRTL, AlignLeft},
		{AlignCenter, DirectionRTL, AlignCenter},
	}
	for _, tt := range tests {
		if got := tt.align.Physical(tt.dir); got != tt.want {
			t.Errorf("%v.Physical(%v) = %v, want %v", tt.align, tt.dir, got, tt.want)
		}
	}
}
