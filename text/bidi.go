package text

import (
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"
)

// lrm forces a left-to-right paragraph level. The bidi package only lets
// callers force right-to-left; otherwise it detects the level from the
// first strong character.
const lrm = "\u200e"

// run is a range of runes with one direction.
type run struct {
	start, end int
	rtl        bool
}

// visualRuns splits text into directional runs and returns them in visual
// order, left to right. Paragraph separators end a paragraph and are not
// part of any run.
func visualRuns(text []rune, dir Direction) []run {
	rtl := dir.Resolve() == DirectionRTL
	var out []run
	for base := 0; base < len(text); {
		s := string(text[base:])
		prefix := 0
		var opts []bidi.Option
		if rtl {
			opts = append(opts, bidi.DefaultDirection(bidi.RightToLeft))
		} else {
			s = lrm + s
			prefix = 1
		}
		var p bidi.Paragraph
		n, err := p.SetString(s, opts...)
		consumed := utf8.RuneCountInString(s[:n]) - prefix
		if consumed <= 0 {
			consumed = len(text) - base
		}
		paragraph := paragraphRuns(&p, err, prefix, consumed, rtl)
		for i := range paragraph {
			paragraph[i].start += base
			paragraph[i].end += base
		}
		out = append(out, paragraph...)
		base += consumed
	}
	return out
}

func paragraphRuns(p *bidi.Paragraph, err error, prefix, n int, rtl bool) []run {
	var ord bidi.Ordering
	if err == nil {
		ord, err = p.Order()
	}
	if err != nil || ord.NumRuns() == 0 {
		return []run{{0, n, rtl}}
	}
	var runs []run
	for i := range ord.NumRuns() {
		r := ord.Run(i)
		start, last := r.Pos()
		start, end := max(start-prefix, 0), min(last+1-prefix, n)
		if end <= start {
			continue
		}
		runs = append(runs, run{start, end, r.Direction() == bidi.RightToLeft})
	}
	// Runs come back in logical order. With two embedding levels the visual
	// order keeps them on a left-to-right paragraph and reverses them on a
	// right-to-left one.
	if rtl {
		slices.Reverse(runs)
	}
	return runs
}
