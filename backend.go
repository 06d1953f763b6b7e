package resumepdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Backend serializes a finished layout into a PDF document. Pages must be
// written in order; a backend never revisits a page once the next one has
// been started.
type Backend interface {
	Render(ctx context.Context, l *Layout, meta Metadata) ([]byte, error)
}

// Metadata is written into the document information dictionary.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Language string

	// Created is the single timestamp embedded in the document. It comes
	// from the generator clock.
	Created time.Time
}

// FPDF returns the default backend, which draws the layout with the PDF
// core fonts. It runs synchronously and does not observe ctx.
func FPDF() Backend {
	return fpdfBackend{}
}

type fpdfBackend struct{}

func (fpdfBackend) Render(_ context.Context, l *Layout, meta Metadata) ([]byte, error) {
	g := l.Geometry
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)
	if meta.Language != "" {
		pdf.SetLang(meta.Language)
	}
	created := meta.Created
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)

	for _, p := range l.Pages {
		pdf.AddPage()
		for _, cmd := range p.Commands {
			if err := drawCommand(pdf, cmd); err != nil {
				return nil, fmt.Errorf("page %d: %w", p.Index+1, err)
			}
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("page %d: %w", p.Index+1, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawCommand(pdf *fpdf.Fpdf, cmd Command) error {
	switch cmd.Kind {
	case KindRect:
		pdf.SetFillColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))
		pdf.Rect(cmd.X, cmd.Y, cmd.W, cmd.H, "F")
	case KindLine:
		pdf.SetDrawColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))
		pdf.SetLineWidth(cmd.LineWidth)
		pdf.Line(cmd.X, cmd.Y, cmd.X+cmd.W, cmd.Y+cmd.H)
	case KindText:
		enc, err := encodeWinAnsi(cmd.Text)
		if err != nil {
			return err
		}
		pdf.SetFont(cmd.Font.Family, cmd.Font.Style, cmd.Font.Size)
		pdf.SetTextColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))
		pdf.Text(cmd.X, cmd.Baseline, enc)
	case KindLink:
		pdf.LinkString(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.URL)
	default:
		return fmt.Errorf("unknown command kind %v", cmd.Kind)
	}
	return nil
}
