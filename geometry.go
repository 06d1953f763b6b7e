package resumepdf

import (
	"fmt"
	"strings"
)

// ptToMM converts typographic points to millimetres.
const ptToMM = 25.4 / 72

const (
	leftColumnRatio = 0.33
	columnGutter    = 8.0

	// baselineFactor places the baseline inside a line box, as a fraction
	// of the font size measured from the top of the box.
	baselineFactor = 0.95
	// capHeightFactor is the Helvetica cap height relative to the font size.
	capHeightFactor = 0.718

	titleBarWidth = 1.2
	titleBarGap   = 2.5
	titleBarPad   = 1.0

	underlineOffset = 0.4
	underlineWidth  = 0.2

	barTrackHeight = 1.8
	bulletIndent   = 3.5
)

// Vertical rhythm, in millimetres.
const (
	sectionGap    = 6.0
	titleGap      = 2.5
	itemGap       = 3.5
	smallGap      = 1.2
	headerGap     = 2.0
	barLabelGap   = 0.8
	barSpacing    = 2.2
	pairSpacing   = 1.8
	linkTopMargin = 0.8
)

// Geometry holds the layout constants derived from a PageConfig. All
// values are millimetres measured from the top-left corner of the page.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     Margin

	// BandWidth is the width of the left background band, which starts at
	// the page edge and ends in the middle of the gutter.
	BandWidth float64

	LeftX      float64
	LeftWidth  float64
	RightX     float64
	RightWidth float64

	// Top and Bottom bound the printable area vertically.
	Top    float64
	Bottom float64
}

func newGeometry(pc PageConfig) Geometry {
	w, h := pc.dimensions()
	m := pc.resolved().Margin
	leftW := (w - m.Left - m.Right - columnGutter) * leftColumnRatio
	rightX := m.Left + leftW + columnGutter
	return Geometry{
		PageWidth:  w,
		PageHeight: h,
		Margin:     m,
		BandWidth:  m.Left + leftW + columnGutter/2,
		LeftX:      m.Left,
		LeftWidth:  leftW,
		RightX:     rightX,
		RightWidth: w - m.Right - rightX,
		Top:        m.Top,
		Bottom:     h - m.Bottom,
	}
}

// column returns the content band of col.
func (g Geometry) column(col Column) (x, width float64) {
	if col == ColumnLeft {
		return g.LeftX, g.LeftWidth
	}
	return g.RightX, g.RightWidth
}

// PrintableHeight is the vertical space available on one page.
func (g Geometry) PrintableHeight() float64 {
	return g.Bottom - g.Top
}

// Font selects one of the PDF core fonts.
type Font struct {
	Family string  // Family is a core font family such as "Helvetica".
	Style  string  // Style is "", "B", "I" or "BI".
	Size   float64 // Size in points.
}

func (f Font) bold() Font {
	f.Style = "B"
	return f
}

// Typography holds font sizes in points and the line spacing factor.
type Typography struct {
	Family      string
	Name        float64
	Headline    float64
	Section     float64
	ItemTitle   float64
	Body        float64
	Small       float64
	LineSpacing float64
}

// DefaultTypography returns the typography used when none is given.
func DefaultTypography() Typography {
	return Typography{
		Family:      "Helvetica",
		Name:        20,
		Headline:    11,
		Section:     11,
		ItemTitle:   10,
		Body:        9,
		Small:       8,
		LineSpacing: 1.3,
	}
}

func (t Typography) resolved() Typography {
	d := DefaultTypography()
	if t.Family == "" {
		t.Family = d.Family
	}
	for _, f := range []struct{ v, d *float64 }{
		{&t.Name, &d.Name},
		{&t.Headline, &d.Headline},
		{&t.Section, &d.Section},
		{&t.ItemTitle, &d.ItemTitle},
		{&t.Body, &d.Body},
		{&t.Small, &d.Small},
		{&t.LineSpacing, &d.LineSpacing},
	} {
		if *f.v <= 0 {
			*f.v = *f.d
		}
	}
	return t
}

func (t Typography) font(size float64) Font {
	return Font{Family: t.Family, Size: size}
}

// lineHeight is the height of one line box for a font size in points.
func (t Typography) lineHeight(size float64) float64 {
	return size * ptToMM * t.LineSpacing
}

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// ParseColor converts a "#rrggbb" hex string to a Color.
func ParseColor(hex string) (Color, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("resumepdf: invalid color %q", hex)
	}
	var c Color
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("resumepdf: invalid color %q: %w", hex, err)
	}
	return c, nil
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette holds the document colors.
type Palette struct {
	Sidebar      Color // left band background
	SidebarText  Color
	SidebarMuted Color
	Accent       Color
	Heading      Color
	Text         Color
	Muted        Color
	Track        Color // progress bar background
	Link         Color
}

// DefaultPalette returns the palette used when none is given.
func DefaultPalette() Palette {
	return Palette{
		Sidebar:      Color{30, 41, 59},
		SidebarText:  Color{248, 250, 252},
		SidebarMuted: Color{148, 163, 184},
		Accent:       Color{59, 130, 246},
		Heading:      Color{15, 23, 42},
		Text:         Color{51, 65, 85},
		Muted:        Color{100, 116, 139},
		Track:        Color{71, 85, 105},
		Link:         Color{37, 99, 235},
	}
}
