package pdf

import (
	"math"
	"strings"
)

// Span is one text-showing operation. X and Y locate the start of its
// baseline in default user space: points from the bottom-left corner.
type Span struct {
	X, Y float64
	Size float64
	Font string
	Text string
}

// Rect is a filled rectangle in default user space.
type Rect struct {
	X, Y, W, H float64
	// Fill is the RGB fill color, each component in [0, 1].
	Fill [3]float64
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Content is what a page draws, in drawing order.
type Content struct {
	Spans []Span
	Rects []Rect
}

// Text returns the text of all spans, one span per line.
func (c *Content) Text() string {
	lines := make([]string, len(c.Spans))
	for i, s := range c.Spans {
		lines[i] = s.Text
	}
	return strings.Join(lines, "\n")
}

// Draws interprets the content stream of the page. Only text from simple
// fonts is decoded; spans set in composite fonts are skipped.
func (p *Page) Draws() (*Content, error) {
	data, err := p.Content()
	if err != nil {
		return nil, err
	}
	simple, err := p.simpleFonts()
	if err != nil {
		return nil, err
	}
	in := interpreter{fonts: simple, gs: graphicsState{ctm: identity}}
	if err := in.run(data); err != nil {
		return nil, err
	}
	return &in.out, nil
}

// simpleFonts reports, per font resource name, whether the font is a
// single-byte font.
func (p *Page) simpleFonts() (map[string]bool, error) {
	res, err := p.doc.dict(p.dict, "Resources")
	if err != nil || res == nil {
		return nil, err
	}
	fonts, err := p.doc.dict(res, "Font")
	if err != nil || fonts == nil {
		return nil, err
	}
	out := make(map[string]bool, len(fonts))
	for name := range fonts {
		f, err := p.doc.get(fonts, name)
		if err != nil {
			return nil, err
		}
		sub, _ := f.Dict.Name("Subtype")
		out[name] = sub != "Type0"
	}
	return out, nil
}

type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

// mul returns m × n.
func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

func (m matrix) apply(x, y float64) (float64, float64) {
	return x*m[0] + y*m[2] + m[4], x*m[1] + y*m[3] + m[5]
}

type graphicsState struct {
	ctm  matrix
	fill [3]float64
}

type interpreter struct {
	fonts map[string]bool

	gs    graphicsState
	stack []graphicsState

	tm, tlm  matrix
	font     string
	size     float64
	leading  float64
	pending  []Rect
	operands []*Object

	out Content
}

func (in *interpreter) run(data []byte) error {
	s := newScanner(data, 0)
	for {
		s.skip()
		if s.eof() {
			return nil
		}
		c := s.data[s.pos]
		if isOperator(c) {
			in.op(s.token())
			in.operands = in.operands[:0]
			continue
		}
		o, err := s.object()
		if err != nil {
			return err
		}
		in.operands = append(in.operands, o)
	}
}

func isOperator(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '\'' || c == '"' || c == '*'
}

func (in *interpreter) num(i int) float64 {
	if i >= len(in.operands) {
		return 0
	}
	v, _ := in.operands[i].Number()
	return v
}

func (in *interpreter) matrixArgs() matrix {
	return matrix{in.num(0), in.num(1), in.num(2), in.num(3), in.num(4), in.num(5)}
}

func (in *interpreter) op(op string) {
	switch op {
	case "q":
		in.stack = append(in.stack, in.gs)
	case "Q":
		if n := len(in.stack); n > 0 {
			in.gs, in.stack = in.stack[n-1], in.stack[:n-1]
		}
	case "cm":
		in.gs.ctm = in.matrixArgs().mul(in.gs.ctm)
	case "rg":
		in.gs.fill = [3]float64{in.num(0), in.num(1), in.num(2)}
	case "g":
		v := in.num(0)
		in.gs.fill = [3]float64{v, v, v}
	case "re":
		in.rect(in.num(0), in.num(1), in.num(2), in.num(3))
	case "f", "F", "f*", "B", "B*", "b", "b*":
		in.out.Rects = append(in.out.Rects, in.pending...)
		in.pending = in.pending[:0]
	case "n", "S", "s":
		in.pending = in.pending[:0]

	case "BT":
		in.tm, in.tlm = identity, identity
	case "Tf":
		if len(in.operands) >= 2 && in.operands[0].Kind == Name {
			in.font = in.operands[0].Name
		}
		in.size = in.num(1)
	case "TL":
		in.leading = in.num(0)
	case "Td":
		in.moveText(in.num(0), in.num(1))
	case "TD":
		in.leading = -in.num(1)
		in.moveText(in.num(0), in.num(1))
	case "Tm":
		in.tm = in.matrixArgs()
		in.tlm = in.tm
	case "T*":
		in.moveText(0, -in.leading)
	case "Tj":
		in.show(in.str(0))
	case "'":
		in.moveText(0, -in.leading)
		in.show(in.str(0))
	case `"`:
		in.moveText(0, -in.leading)
		in.show(in.str(2))
	case "TJ":
		if len(in.operands) > 0 {
			var sb strings.Builder
			for _, o := range in.operands[0].Array {
				if o.Kind == String {
					sb.Write(o.Str)
				}
			}
			in.show([]byte(sb.String()))
		}
	}
}

func (in *interpreter) str(i int) []byte {
	if i >= len(in.operands) || in.operands[i].Kind != String {
		return nil
	}
	return in.operands[i].Str
}

func (in *interpreter) moveText(tx, ty float64) {
	in.tlm = matrix{1, 0, 0, 1, tx, ty}.mul(in.tlm)
	in.tm = in.tlm
}

func (in *interpreter) show(b []byte) {
	if len(b) == 0 || !in.fonts[in.font] {
		return
	}
	m := in.tm.mul(in.gs.ctm)
	x, y := m.apply(0, 0)
	scale := math.Hypot(m[2], m[3])
	in.out.Spans = append(in.out.Spans, Span{
		X:    x,
		Y:    y,
		Size: in.size * scale,
		Font: in.font,
		Text: decodeWinAnsi(b),
	})
}

// rect records a path rectangle, transformed and normalized to a
// positive width and height.
func (in *interpreter) rect(x, y, w, h float64) {
	x0, y0 := in.gs.ctm.apply(x, y)
	x1, y1 := in.gs.ctm.apply(x+w, y+h)
	in.pending = append(in.pending, Rect{
		X:    math.Min(x0, x1),
		Y:    math.Min(y0, y1),
		W:    math.Abs(x1 - x0),
		H:    math.Abs(y1 - y0),
		Fill: in.gs.fill,
	})
}
