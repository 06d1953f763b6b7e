package resumepdf

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Measurer reports the width of a string set in a font, in millimetres.
// Implementations need not be safe for concurrent use; a Generator
// creates a fresh one for every document.
type Measurer interface {
	StringWidth(s string, f Font) (float64, error)
}

// coreFontMeasurer measures with the metrics of the PDF core fonts, the
// same tables the fpdf backend draws with.
type coreFontMeasurer struct {
	pdf *fpdf.Fpdf
}

func newCoreFontMeasurer() *coreFontMeasurer {
	return &coreFontMeasurer{pdf: fpdf.New("P", "mm", "A4", "")}
}

func (m *coreFontMeasurer) StringWidth(s string, f Font) (float64, error) {
	enc, err := encodeWinAnsi(s)
	if err != nil {
		return 0, err
	}
	m.pdf.SetFont(f.Family, f.Style, f.Size)
	if err := m.pdf.Error(); err != nil {
		return 0, fmt.Errorf("selecting font %s %q: %w", f.Family, f.Style, err)
	}
	return m.pdf.GetStringWidth(enc), nil
}

// upperWinAnsi upper-cases s, keeping any rune whose upper-case form has
// no Windows-1252 encoding. "µ" stays "µ" rather than becoming Greek "Μ".
func upperWinAnsi(s string) string {
	return strings.Map(func(r rune) rune {
		u := unicode.ToUpper(r)
		if _, ok := charmap.Windows1252.EncodeRune(u); !ok {
			return r
		}
		return u
	}, s)
}

// encodeWinAnsi converts UTF-8 text to the single-byte encoding used by
// the core fonts.
func encodeWinAnsi(s string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == utf8.RuneError {
			return "", &UnsupportedCharError{Rune: r, Text: s}
		}
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			return "", &UnsupportedCharError{Rune: r, Text: s}
		}
		sb.WriteByte(b)
	}
	return sb.String(), nil
}

// Block is a measured run of text: the wrapped lines, their widths and
// the line height they will be drawn with. The same Block serves the height
// estimate and the draw, so the two cannot disagree.
type Block struct {
	Lines      []string
	Widths     []float64
	Font       Font
	LineHeight float64
}

// Height returns the vertical space the block consumes.
func (b Block) Height() float64 {
	return float64(len(b.Lines)) * b.LineHeight
}

// Empty reports whether the block has no lines.
func (b Block) Empty() bool {
	return len(b.Lines) == 0
}

type measureKey struct {
	text  string
	width float64
	font  Font
}

// measurement is the single measurement pass of one generation, memoized
// so repeated strings are wrapped once.
type measurement struct {
	m     Measurer
	typo  Typography
	cache map[measureKey]Block
}

func newMeasurement(m Measurer, typo Typography) *measurement {
	return &measurement{m: m, typo: typo, cache: make(map[measureKey]Block)}
}

// measure wraps text to width in font f.
func (ms *measurement) measure(text string, width float64, f Font) (Block, error) {
	key := measureKey{text: text, width: width, font: f}
	if b, ok := ms.cache[key]; ok {
		return b, nil
	}
	w := wrapper{m: ms.m, width: width, font: f}
	if err := w.wrap(text); err != nil {
		return Block{}, err
	}
	b := Block{Lines: w.lines, Widths: w.widths, Font: f, LineHeight: ms.typo.lineHeight(f.Size)}
	ms.cache[key] = b
	return b, nil
}

// wrapper breaks text into lines no wider than width using greedy word
// wrapping. Newlines start a new paragraph; a word wider than the whole
// line is broken between characters.
type wrapper struct {
	m     Measurer
	width float64
	font  Font

	lines  []string
	widths []float64
}

func (w *wrapper) wrap(text string) error {
	for _, para := range strings.Split(text, "\n") {
		line, lineW := "", 0.0
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			cw, err := w.m.StringWidth(candidate, w.font)
			if err != nil {
				return err
			}
			if cw <= w.width {
				line, lineW = candidate, cw
				continue
			}
			if line != "" {
				w.push(line, lineW)
			}
			ww, err := w.m.StringWidth(word, w.font)
			if err != nil {
				return err
			}
			if ww <= w.width {
				line, lineW = word, ww
				continue
			}
			line, lineW, err = w.breakWord(word)
			if err != nil {
				return err
			}
		}
		if line != "" {
			w.push(line, lineW)
		}
	}
	return nil
}

func (w *wrapper) push(line string, width float64) {
	w.lines = append(w.lines, line)
	w.widths = append(w.widths, width)
}

// breakWord emits all full pieces of an overlong word and returns the
// remainder, which starts the next line. Every piece holds at least one
// character.
func (w *wrapper) breakWord(word string) (string, float64, error) {
	var cur []rune
	curW := 0.0
	for _, r := range word {
		next := string(append(cur[:len(cur):len(cur)], r))
		nw, err := w.m.StringWidth(next, w.font)
		if err != nil {
			return "", 0, err
		}
		if nw > w.width && len(cur) > 0 {
			w.push(string(cur), curW)
			cur = []rune{r}
			if curW, err = w.m.StringWidth(string(r), w.font); err != nil {
				return "", 0, err
			}
			continue
		}
		cur, curW = append(cur, r), nw
	}
	return string(cur), curW, nil
}
