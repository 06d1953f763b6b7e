package resumepdf

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

var pageTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.Width}} {{.Height}}; margin: 0; }
* { margin: 0; padding: 0; box-sizing: border-box; }
html, body { -webkit-print-color-adjust: exact; print-color-adjust: exact; }
.page { position: relative; overflow: hidden; width: {{.Width}}; height: {{.Height}}; break-after: page; }
.page:last-child { break-after: auto; }
.page > * { position: absolute; }
.text { white-space: pre; font-family: {{.Family}}; }
a { display: block; }
</style>
</head>
<body>
{{range .Pages}}<div class="page">
{{range .}}{{if .URL}}<a href="{{.URL}}" style="{{.Style}}"></a>
{{else if .Text}}<div class="text" style="{{.Style}}">{{.Text}}</div>
{{else}}<div style="{{.Style}}"></div>
{{end}}{{end}}</div>
{{end}}</body>
</html>
`))

type htmlPage struct {
	Lang   string
	Title  string
	Width  template.CSS
	Height template.CSS
	Family template.CSS
	Pages  [][]htmlElement
}

type htmlElement struct {
	URL   string
	Text  string
	Style template.CSS
}

// WriteHTML writes l as a standalone HTML document with one absolutely
// positioned element per draw command. Printed with zero margins at the
// page size it reproduces the pagination of the layout exactly.
func WriteHTML(w io.Writer, l *Layout, meta Metadata) error {
	g := l.Geometry
	doc := htmlPage{
		Lang:   meta.Language,
		Title:  meta.Title,
		Width:  mm(g.PageWidth),
		Height: mm(g.PageHeight),
		Family: cssFamily(l),
	}
	for _, p := range l.Pages {
		els := make([]htmlElement, 0, len(p.Commands))
		for _, c := range p.Commands {
			els = append(els, htmlElementFor(c))
		}
		doc.Pages = append(doc.Pages, els)
	}
	if err := pageTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("resumepdf: rendering html: %w", err)
	}
	return nil
}

func htmlElementFor(c Command) htmlElement {
	box := fmt.Sprintf("left:%s;top:%s;width:%s;", mm(c.X), mm(c.Y), mm(c.W))
	switch c.Kind {
	case KindText:
		style := box + fmt.Sprintf("height:%s;line-height:%s;font-size:%.2fpt;color:%s;",
			mm(c.H), mm(c.H), c.Font.Size, c.Color.Hex())
		if strings.Contains(c.Font.Style, "B") {
			style += "font-weight:bold;"
		}
		if strings.Contains(c.Font.Style, "I") {
			style += "font-style:italic;"
		}
		return htmlElement{Text: c.Text, Style: template.CSS(style)}
	case KindLine:
		return htmlElement{Style: template.CSS(fmt.Sprintf("left:%s;top:%s;width:%s;border-top:%s solid %s;",
			mm(c.X), mm(c.Y-c.LineWidth/2), mm(c.W), mm(c.LineWidth), c.Color.Hex()))}
	case KindLink:
		return htmlElement{URL: c.URL, Style: template.CSS(box + "height:" + string(mm(c.H)) + ";")}
	default:
		return htmlElement{Style: template.CSS(box + fmt.Sprintf("height:%s;background:%s;", mm(c.H), c.Color.Hex()))}
	}
}

func mm(v float64) template.CSS {
	return template.CSS(fmt.Sprintf("%.3fmm", v))
}

// cssFamily maps the core font family of the first text run to a CSS font
// stack with metrically compatible fallbacks.
func cssFamily(l *Layout) template.CSS {
	for _, p := range l.Pages {
		for _, c := range p.Commands {
			if c.Kind != KindText {
				continue
			}
			switch strings.ToLower(c.Font.Family) {
			case "times":
				return `"Times New Roman", Times, "Liberation Serif", serif`
			case "courier":
				return `"Courier New", Courier, "Liberation Mono", monospace`
			}
			return `Helvetica, Arial, "Liberation Sans", sans-serif`
		}
	}
	return "sans-serif"
}
