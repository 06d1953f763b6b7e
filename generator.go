package resumepdf

import (
	"context"
	"fmt"
	"strings"
)

// Creator is written into the document information of every résumé.
const Creator = "go-resume-pdf"

// Generator lays out résumés and serializes them through a [Backend].
//
// A Generator holds only configuration. Every call builds its own
// measurer, cursor and layout, so a Generator is safe for concurrent use
// and concurrent generations never share state.
type Generator struct {
	cfg generatorConfig
	geo Geometry
}

// NewGenerator creates a Generator with the given options. It fails if a
// configured section is unknown.
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := defaultGeneratorConfig()
	for _, o := range opts {
		o(&cfg)
	}
	for _, s := range cfg.sections {
		if !s.known() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, s)
		}
	}
	if cfg.backend == nil {
		cfg.backend = FPDF()
	}
	cfg.typography = cfg.typography.resolved()
	return &Generator{cfg: cfg, geo: newGeometry(cfg.page.resolved())}, nil
}

// Geometry returns the layout constants the generator draws with.
func (g *Generator) Geometry() Geometry {
	return g.geo
}

// Layout validates c and lays it out without serializing it. The
// returned layout can be inspected or passed to any Backend.
func (g *Generator) Layout(c *Content) (*Layout, error) {
	return g.layout(c, newCoreFontMeasurer())
}

func (g *Generator) layout(c *Content, m Measurer) (*Layout, error) {
	if err := Validate(c, g.cfg.sections, g.cfg.projectLimit); err != nil {
		return nil, err
	}
	a := &assembly{
		frame:        newFrame(g.geo, g.cfg.typography, g.cfg.palette, m),
		doc:          c,
		projectLimit: g.cfg.projectLimit,
	}
	if err := a.assemble(g.cfg.sections); err != nil {
		return nil, err
	}
	return a.layout(), nil
}

// Generate lays out c and renders it to PDF. Either a complete document
// is returned or an error; a failed generation never yields partial
// output.
func (g *Generator) Generate(ctx context.Context, c *Content) (*Result, error) {
	l, err := g.Layout(c)
	if err != nil {
		return nil, err
	}
	data, err := g.cfg.backend.Render(ctx, l, g.Metadata(c))
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	return NewResult(data, l.PageCount()), nil
}

// Metadata returns the document information written for c.
func (g *Generator) Metadata(c *Content) Metadata {
	pi := c.PersonalInfo
	title := strings.TrimSpace(pi.Name)
	if pi.Title != "" {
		title += " - " + strings.TrimSpace(pi.Title)
	}
	return Metadata{
		Title:    title,
		Author:   pi.Name,
		Subject:  pi.Title,
		Creator:  Creator,
		Language: c.Language,
		Created:  g.cfg.clock(),
	}
}

// Generate renders c with a temporary [Generator]. For repeated use
// create one with [NewGenerator].
func Generate(ctx context.Context, c *Content, opts ...Option) (*Result, error) {
	g, err := NewGenerator(opts...)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, c)
}
