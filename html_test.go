package resumepdf

import (
	"bytes"
	"strings"
	"testing"
)

func renderHTML(t *testing.T, c *Content, opts ...Option) (string, *Layout) {
	t.Helper()
	g, err := NewGenerator(opts...)
	if err != nil {
		t.Fatal(err)
	}
	l, err := g.Layout(c)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, l, g.Metadata(c)); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	return buf.String(), l
}

func TestWriteHTML(t *testing.T) {
	out, l := renderHTML(t, longContent(t))

	for _, want := range []string{
		`<!DOCTYPE html>`,
		`<html lang="en">`,
		`<title>Alex Morgan - Senior Backend Engineer</title>`,
		`@page { size: 210.000mm 297.000mm; margin: 0; }`,
		`href="mailto:alex.morgan@example.com"`,
		`Helvetica, Arial`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
	if got := strings.Count(out, `class="page"`); got != l.PageCount() {
		t.Errorf("%d page elements, layout has %d pages", got, l.PageCount())
	}
}

func TestWriteHTML_Landscape(t *testing.T) {
	out, _ := renderHTML(t, fixture(t, "es"), WithPageConfig(&PageConfig{Size: Letter, Orientation: Landscape}))
	if !strings.Contains(out, `@page { size: 279.400mm 215.900mm;`) {
		t.Error("landscape letter size not written to @page")
	}
	if !strings.Contains(out, `<html lang="es">`) {
		t.Error("language not written")
	}
}

func TestWriteHTML_EscapesText(t *testing.T) {
	c := fixture(t, "en")
	c.PersonalInfo.Title = "Tools & <Platforms>"
	out, _ := renderHTML(t, c)
	if strings.Contains(out, "<Platforms>") {
		t.Error("text was not escaped")
	}
	if !strings.Contains(out, "Tools &amp; &lt;Platforms&gt;") {
		t.Error("escaped title not found")
	}
}

func TestHTMLElementFor(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []string
	}{
		{
			"bold text",
			Command{Kind: KindText, X: 10, Y: 20, W: 30, H: 4, Text: "Hi", Font: Font{Family: "Helvetica", Style: "B", Size: 9}, Color: Color{R: 255}},
			[]string{"left:10.000mm", "top:20.000mm", "font-size:9.00pt", "color:#ff0000", "font-weight:bold"},
		},
		{
			"rule",
			Command{Kind: KindLine, X: 5, Y: 10, W: 50, LineWidth: 0.4},
			[]string{"top:9.800mm", "border-top:0.400mm solid #000000"},
		},
		{
			"rect",
			Command{Kind: KindRect, X: 0, Y: 0, W: 70, H: 297, Color: Color{R: 0x10, G: 0x20, B: 0x30}},
			[]string{"height:297.000mm", "background:#102030"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := htmlElementFor(tt.cmd)
			for _, w := range tt.want {
				if !strings.Contains(string(el.Style), w) {
					t.Errorf("style %q is missing %q", el.Style, w)
				}
			}
		})
	}
	link := htmlElementFor(Command{Kind: KindLink, URL: "https://example.com", W: 10, H: 4})
	if link.URL != "https://example.com" || link.Text != "" {
		t.Errorf("link element = %+v", link)
	}
}
