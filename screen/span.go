package screen

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/gridterm/color"
)

// Span is an ordered run of text sharing one style. It has no lifecycle
// of its own: it is consumed the moment it is written into a buffer.
type Span struct {
	Text  string
	Style Style
}

// NewSpan builds a span over the default style with the given options
// applied.
func NewSpan(text string, opts ...SpanOption) Span {
	s := Span{Text: text, Style: DefaultStyle()}
	for _, opt := range opts {
		opt(&s.Style)
	}
	return s
}

// SpanOption mutates a span's style during construction.
type SpanOption func(*Style)

// WithFg sets the foreground color.
func WithFg(c color.Color) SpanOption {
	return func(s *Style) { s.Fg = c.AsBackground(false) }
}

// WithBg sets the background color.
func WithBg(c color.Color) SpanOption {
	return func(s *Style) { s.Bg = c.AsBackground(true) }
}

// WithAttrs sets attribute bits.
func WithAttrs(a Attr) SpanOption {
	return func(s *Style) { s.Attrs |= a }
}

// Cells expands the span into one cell per code point. Newlines are kept
// as literal cells here; the terminal façade splits runs on them before
// they reach a buffer.
func (s Span) Cells() []Cell {
	out := make([]Cell, 0, len(s.Text))
	for _, r := range s.Text {
		out = append(out, NewCell(r, s.Style))
	}
	return out
}

// Width returns the visual width of text on a terminal. Note that cell
// accounting in buffers is one cell per code point regardless; this
// helper exists for callers aligning text that may contain wide runes.
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// ContentKind tags the closed set of inputs a write accepts.
type ContentKind uint8

const (
	KindText ContentKind = iota
	KindSpans
	KindCells
)

// Content is the tagged write input: raw text, styled spans, or a
// pre-built cell run. Exactly one variant is populated, per Kind.
type Content struct {
	Kind  ContentKind
	Text  string
	Spans []Span
	Run   []Cell
}

// Text wraps a raw string; it picks up the writer's base style.
func Text(s string) Content {
	return Content{Kind: KindText, Text: s}
}

// Spans wraps styled spans.
func Spans(spans ...Span) Content {
	return Content{Kind: KindSpans, Spans: spans}
}

// CellRun wraps an already-expanded cell run.
func CellRun(cells ...Cell) Content {
	return Content{Kind: KindCells, Run: cells}
}

// Cells normalizes any variant into a cell run. base styles raw text;
// spans and cell runs carry their own styling.
func (c Content) Cells(base Style) []Cell {
	switch c.Kind {
	case KindSpans:
		var out []Cell
		for _, sp := range c.Spans {
			out = append(out, sp.Cells()...)
		}
		return out
	case KindCells:
		return c.Run
	default:
		return Span{Text: c.Text, Style: base}.Cells()
	}
}
