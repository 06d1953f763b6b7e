package resumepdf

import "strings"

// Column identifies one of the two write heads.
type Column int

const (
	// ColumnLeft is the narrow column on the background band.
	ColumnLeft Column = iota
	// ColumnRight is the wide main column.
	ColumnRight
)

func (c Column) String() string {
	if c == ColumnLeft {
		return "left"
	}
	return "right"
}

// Kind is the type of a draw command.
type Kind int

const (
	KindText Kind = iota // a single line of text
	KindRect             // a filled rectangle
	KindLine             // a stroked line segment
	KindLink             // a clickable region bound to a URL
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindRect:
		return "rect"
	case KindLine:
		return "line"
	case KindLink:
		return "link"
	}
	return "unknown"
}

// Command is one drawing operation on a page. X, Y, W and H describe the
// bounding box in millimetres from the top-left corner. For KindLine the
// segment runs from (X, Y) to (X+W, Y+H).
type Command struct {
	Kind    Kind
	Column  Column
	Section Section

	X, Y, W, H float64

	// Baseline is the y coordinate of the text baseline (KindText only).
	Baseline float64
	Text     string
	Font     Font
	URL      string
	Color    Color
	// LineWidth is the stroke width of a KindLine.
	LineWidth float64
	// Background marks the page band painted on every page.
	Background bool
}

// Bottom returns the lowest y coordinate covered by the command.
func (c Command) Bottom() float64 {
	if c.H < 0 {
		return c.Y
	}
	return c.Y + c.H
}

// Page is an ordered list of draw commands. Commands are replayed in order.
type Page struct {
	Index    int
	Commands []Command
}

// Text returns the text runs of the page joined by newlines.
func (p Page) Text() string {
	var lines []string
	for _, c := range p.Commands {
		if c.Kind == KindText {
			lines = append(lines, c.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// Links returns the URLs of all link regions on the page in order.
func (p Page) Links() []string {
	var urls []string
	for _, c := range p.Commands {
		if c.Kind == KindLink {
			urls = append(urls, c.URL)
		}
	}
	return urls
}

// Layout is the laid-out résumé: the in-memory drawing surface a Backend
// serializes.
type Layout struct {
	Geometry Geometry
	Palette  Palette
	Pages    []Page
}

// PageCount returns the number of pages.
func (l *Layout) PageCount() int {
	return len(l.Pages)
}

// ColumnCommands returns the commands of one column, page by page.
func (l *Layout) ColumnCommands(col Column) [][]Command {
	out := make([][]Command, len(l.Pages))
	for i, p := range l.Pages {
		for _, c := range p.Commands {
			if c.Column == col {
				out[i] = append(out[i], c)
			}
		}
	}
	return out
}

// SectionCommands returns every command emitted by one section.
func (l *Layout) SectionCommands(s Section) []Command {
	var out []Command
	for _, p := range l.Pages {
		for _, c := range p.Commands {
			if c.Section == s {
				out = append(out, c)
			}
		}
	}
	return out
}
