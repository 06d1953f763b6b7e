package resumepdf

// frame accumulates the pages of one generation. Pages are materialized
// on first use and each new page gets the left background band before
// any other command.
type frame struct {
	geo     Geometry
	typo    Typography
	pal     Palette
	ms      *measurement
	pages   []Page
	section Section
}

func newFrame(geo Geometry, typo Typography, pal Palette, m Measurer) *frame {
	f := &frame{geo: geo, typo: typo, pal: pal, ms: newMeasurement(m, typo)}
	f.page(0)
	return f
}

func (f *frame) page(i int) *Page {
	for len(f.pages) <= i {
		idx := len(f.pages)
		f.pages = append(f.pages, Page{Index: idx, Commands: []Command{{
			Kind:       KindRect,
			Column:     ColumnLeft,
			W:          f.geo.BandWidth,
			H:          f.geo.PageHeight,
			Color:      f.pal.Sidebar,
			Background: true,
		}}})
	}
	return &f.pages[i]
}

func (f *frame) emit(c Cursor, col Column, cmd Command) {
	cmd.Column = col
	cmd.Section = f.section
	p := f.page(c.Page(col))
	p.Commands = append(p.Commands, cmd)
}

func (f *frame) layout() *Layout {
	return &Layout{Geometry: f.geo, Palette: f.pal, Pages: f.pages}
}

// measure wraps text to the content width of col, less indent.
func (f *frame) measure(text string, col Column, indent float64, font Font) (Block, error) {
	_, w := f.geo.column(col)
	return f.ms.measure(text, w-indent, font)
}

func (f *frame) run(x, y float64, line string, width float64, b Block, color Color) Command {
	return Command{
		Kind:     KindText,
		X:        x,
		Y:        y,
		W:        width,
		H:        b.LineHeight,
		Baseline: y + b.Font.Size*ptToMM*baselineFactor,
		Text:     line,
		Font:     b.Font,
		Color:    color,
	}
}

// text draws a measured block at x. Every line re-checks the room below
// the cursor, so a block taller than the space left flows onto the next
// page instead of overflowing.
func (f *frame) text(c Cursor, col Column, x float64, b Block, color Color) Cursor {
	for i, line := range b.Lines {
		c = ensureRoom(f.geo, c, col, b.LineHeight)
		f.emit(c, col, f.run(x, c.Y(col), line, b.Widths[i], b, color))
		c = c.Advance(col, b.LineHeight)
	}
	return c
}

// link draws a measured block as a hyperlink: each line is a text run, an
// underline drawn as a separate line segment in the text color, and a
// clickable region over the line box.
func (f *frame) link(c Cursor, col Column, x float64, b Block, url string, color Color) Cursor {
	for i, line := range b.Lines {
		c = ensureRoom(f.geo, c, col, b.LineHeight)
		y := c.Y(col)
		r := f.run(x, y, line, b.Widths[i], b, color)
		f.emit(c, col, r)
		f.emit(c, col, Command{
			Kind:      KindLine,
			X:         x,
			Y:         r.Baseline + underlineOffset,
			W:         b.Widths[i],
			Color:     color,
			LineWidth: underlineWidth,
		})
		f.emit(c, col, Command{Kind: KindLink, X: x, Y: y, W: b.Widths[i], H: b.LineHeight, URL: url})
		c = c.Advance(col, b.LineHeight)
	}
	return c
}

// sectionTitle measures a title: bold and upper-cased.
func (f *frame) sectionTitle(title string, col Column) (Block, error) {
	return f.measure(upperWinAnsi(title), col, 0, f.typo.font(f.typo.Section).bold())
}

// drawTitle draws a measured section title. In the right column a short
// vertical bar in the accent color precedes the text, centered on the cap
// height of the first line.
func (f *frame) drawTitle(c Cursor, col Column, b Block) Cursor {
	if b.Empty() {
		return c
	}
	x, _ := f.geo.column(col)
	color := f.pal.Heading
	if col == ColumnLeft {
		color = f.pal.SidebarText
	} else {
		c = ensureRoom(f.geo, c, col, b.LineHeight)
		size := b.Font.Size * ptToMM
		baseline := c.Y(col) + size*baselineFactor
		capH := size * capHeightFactor
		barH := capH + titleBarPad
		f.emit(c, col, Command{
			Kind:  KindRect,
			X:     x - titleBarGap - titleBarWidth,
			Y:     baseline - capH/2 - barH/2,
			W:     titleBarWidth,
			H:     barH,
			Color: f.pal.Accent,
		})
	}
	c = f.text(c, col, x, b, color)
	return c.Advance(col, titleGap)
}

func titleHeight(b Block) float64 {
	if b.Empty() {
		return 0
	}
	return b.Height() + titleGap
}

// progressBarHeight is the space drawBar consumes for a label.
func progressBarHeight(label Block) float64 {
	return label.Height() + barLabelGap + barTrackHeight
}

// drawBar draws a label line, the bar track and the filled part of the
// track proportional to level.
func (f *frame) drawBar(c Cursor, col Column, label Block, level float64) Cursor {
	x, w := f.geo.column(col)
	c = ensureRoom(f.geo, c, col, progressBarHeight(label))
	c = f.text(c, col, x, label, f.pal.SidebarText)
	c = c.Advance(col, barLabelGap)
	c = ensureRoom(f.geo, c, col, barTrackHeight)
	y := c.Y(col)
	f.emit(c, col, Command{Kind: KindRect, X: x, Y: y, W: w, H: barTrackHeight, Color: f.pal.Track})
	f.emit(c, col, Command{Kind: KindRect, X: x, Y: y, W: w * clampLevel(level) / 100, H: barTrackHeight, Color: f.pal.Accent})
	return c.Advance(col, barTrackHeight)
}

// part is one measured element of a stack.
type part struct {
	b      Block
	color  Color
	url    string  // draw as a hyperlink
	bullet bool    // prefix with the bullet glyph and indent
	gap    float64 // space above the part
}

// stack is a vertical run of parts drawn as one unit. Its height is
// computed from the same blocks the draw uses.
type stack []part

func (s stack) height() float64 {
	h := 0.0
	for _, p := range s {
		if !p.b.Empty() {
			h += p.gap + p.b.Height()
		}
	}
	return h
}

// drawStack draws the non-empty parts of s in order. Empty parts take no
// space at all.
func (f *frame) drawStack(c Cursor, col Column, s stack, glyph Block) Cursor {
	x, _ := f.geo.column(col)
	for _, p := range s {
		if p.b.Empty() {
			continue
		}
		c = c.Advance(col, p.gap)
		switch {
		case p.bullet:
			c = f.drawBullet(c, col, glyph, p.b, p.color)
		case p.url != "":
			c = f.link(c, col, x, p.b, p.url, p.color)
		default:
			c = f.text(c, col, x, p.b, p.color)
		}
	}
	return c
}

// drawBullet draws a bullet glyph followed by an indented block.
func (f *frame) drawBullet(c Cursor, col Column, glyph, b Block, color Color) Cursor {
	x, _ := f.geo.column(col)
	c = ensureRoom(f.geo, c, col, b.Height())
	c = ensureRoom(f.geo, c, col, b.LineHeight)
	if !glyph.Empty() {
		f.emit(c, col, f.run(x, c.Y(col), glyph.Lines[0], glyph.Widths[0], b, f.pal.Accent))
	}
	return f.text(c, col, x+bulletIndent, b, color)
}
