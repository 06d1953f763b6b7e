package resumepdf

import (
	"fmt"
	"strings"
)

// Section identifies one block of the résumé.
type Section string

const (
	SectionHeader       Section = "header"
	SectionContact      Section = "contact"
	SectionSkills       Section = "skills"
	SectionLanguages    Section = "languages"
	SectionSummary      Section = "summary"
	SectionExperience   Section = "experience"
	SectionEducation    Section = "education"
	SectionCertificates Section = "certificates"
	SectionProjects     Section = "projects"
	SectionGitHub       Section = "github"
)

// DefaultSections is the order sections are drawn in when none is
// configured. The first four fill the left column, the rest the right.
var DefaultSections = []Section{
	SectionHeader,
	SectionContact,
	SectionSkills,
	SectionLanguages,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionCertificates,
	SectionProjects,
	SectionGitHub,
}

// Column reports the column s is drawn in.
func (s Section) Column() Column {
	switch s {
	case SectionHeader, SectionContact, SectionSkills, SectionLanguages:
		return ColumnLeft
	}
	return ColumnRight
}

func (s Section) known() bool {
	_, ok := assemblers[s]
	return ok
}

// assembler draws one section starting at c and returns the cursor after
// it. An assembler that has nothing to draw returns c unchanged.
type assembler func(a *assembly, c Cursor) (Cursor, error)

var assemblers = map[Section]assembler{
	SectionHeader:       (*assembly).header,
	SectionContact:      (*assembly).contact,
	SectionSkills:       (*assembly).skills,
	SectionLanguages:    (*assembly).languages,
	SectionSummary:      (*assembly).summary,
	SectionExperience:   (*assembly).experience,
	SectionEducation:    (*assembly).education,
	SectionCertificates: (*assembly).certificates,
	SectionProjects:     (*assembly).projects,
	SectionGitHub:       (*assembly).github,
}

// assembly is one run of the section assemblers over a content document.
type assembly struct {
	*frame
	doc          *Content
	projectLimit int
	glyph        Block
}

// assemble draws sections in order. A section that draws anything is
// followed by the section gap in its column.
func (a *assembly) assemble(sections []Section) error {
	glyph, err := a.measure("•", ColumnRight, 0, a.typo.font(a.typo.Body))
	if err != nil {
		return &RenderError{Err: err}
	}
	a.glyph = glyph

	c := newCursor(a.geo)
	for _, s := range sections {
		asm, ok := assemblers[s]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSection, s)
		}
		a.section = s
		next, err := asm(a, c)
		if err != nil {
			return &RenderError{Section: s, Err: err}
		}
		if next != c {
			next = next.Advance(s.Column(), sectionGap)
		}
		c = next
	}
	a.section = ""
	return nil
}

// block measures text for col in the body font family.
func (a *assembly) block(text string, col Column, size float64, bold bool) (Block, error) {
	f := a.typo.font(size)
	if bold {
		f = f.bold()
	}
	return a.measure(strings.TrimSpace(text), col, 0, f)
}

// titled draws a section title followed by its items. The title is kept
// on the page of the first item, and each item is kept together when it
// fits on one page.
func (a *assembly) titled(c Cursor, col Column, title string, items []stack, spacing float64) (Cursor, error) {
	if len(items) == 0 {
		return c, nil
	}
	tb, err := a.sectionTitle(title, col)
	if err != nil {
		return c, err
	}
	c = ensureRoom(a.geo, c, col, titleHeight(tb)+items[0].height())
	c = a.drawTitle(c, col, tb)
	for i, it := range items {
		if i > 0 {
			c = c.Advance(col, spacing)
			c = ensureRoom(a.geo, c, col, it.height())
		}
		c = a.drawStack(c, col, it, a.glyph)
	}
	return c, nil
}

func (a *assembly) header(c Cursor) (Cursor, error) {
	pi := a.doc.PersonalInfo
	name, err := a.block(pi.Name, ColumnLeft, a.typo.Name, true)
	if err != nil {
		return c, err
	}
	title, err := a.block(pi.Title, ColumnLeft, a.typo.Headline, false)
	if err != nil {
		return c, err
	}
	s := stack{
		{b: name, color: a.pal.SidebarText},
		{b: title, color: a.pal.Accent, gap: headerGap},
	}
	c = ensureRoom(a.geo, c, ColumnLeft, s.height())
	return a.drawStack(c, ColumnLeft, s, a.glyph), nil
}

func (a *assembly) contact(c Cursor) (Cursor, error) {
	pi, l := a.doc.PersonalInfo, a.doc.Labels
	entries := []struct{ label, value, url string }{
		{l.Phone, pi.Phone, ""},
		{l.Email, pi.Email, mailto(pi.Email)},
		{l.Location, pi.Location, ""},
		{l.Website, pi.Website, pi.Website},
	}
	var items []stack
	for _, e := range entries {
		if strings.TrimSpace(e.value) == "" {
			continue
		}
		lb, err := a.block(e.label, ColumnLeft, a.typo.Small, false)
		if err != nil {
			return c, err
		}
		vb, err := a.block(e.value, ColumnLeft, a.typo.Body, false)
		if err != nil {
			return c, err
		}
		items = append(items, pair(lb, vb, a.pal.SidebarMuted, a.pal.SidebarText, e.url))
	}
	return a.titled(c, ColumnLeft, l.Contact, items, pairSpacing)
}

// pair builds a label line over a value line.
func pair(label, value Block, labelColor, valueColor Color, url string) stack {
	return stack{
		{b: label, color: labelColor},
		{b: value, color: valueColor, url: url},
	}
}

func (a *assembly) skills(c Cursor) (Cursor, error) {
	sk, l := a.doc.Skills, a.doc.Labels
	groups := []struct {
		title  string
		skills []Skill
	}{
		{l.ProgrammingSkills, sk.Programming},
		{l.Tools, sk.Tools},
	}
	start := c
	for _, g := range groups {
		if len(g.skills) == 0 {
			continue
		}
		if c != start {
			c = c.Advance(ColumnLeft, itemGap)
		}
		var err error
		if c, err = a.bars(c, g.title, g.skills); err != nil {
			return c, err
		}
	}
	return c, nil
}

// bars draws a titled group of progress bars.
func (a *assembly) bars(c Cursor, title string, skills []Skill) (Cursor, error) {
	tb, err := a.sectionTitle(title, ColumnLeft)
	if err != nil {
		return c, err
	}
	labels := make([]Block, len(skills))
	for i, s := range skills {
		if labels[i], err = a.block(s.Name, ColumnLeft, a.typo.Small, false); err != nil {
			return c, err
		}
	}
	c = ensureRoom(a.geo, c, ColumnLeft, titleHeight(tb)+progressBarHeight(labels[0]))
	c = a.drawTitle(c, ColumnLeft, tb)
	for i, s := range skills {
		if i > 0 {
			c = c.Advance(ColumnLeft, barSpacing)
		}
		c = a.drawBar(c, ColumnLeft, labels[i], s.Level)
	}
	return c, nil
}

func (a *assembly) languages(c Cursor) (Cursor, error) {
	sk := a.doc.Skills
	var items []stack
	for _, lang := range sk.Languages {
		nb, err := a.block(lang.Name, ColumnLeft, a.typo.Body, true)
		if err != nil {
			return c, err
		}
		tb, err := a.block(sk.ProficiencyLabel(lang.Level), ColumnLeft, a.typo.Small, false)
		if err != nil {
			return c, err
		}
		items = append(items, pair(nb, tb, a.pal.SidebarText, a.pal.SidebarMuted, ""))
	}
	return a.titled(c, ColumnLeft, a.doc.Labels.Languages, items, pairSpacing)
}

func (a *assembly) summary(c Cursor) (Cursor, error) {
	var paras []string
	for _, p := range a.doc.Summary {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	if len(paras) == 0 {
		return c, nil
	}
	b, err := a.block(strings.Join(paras, "\n"), ColumnRight, a.typo.Body, false)
	if err != nil {
		return c, err
	}
	// Only the first line is kept with the title; long summaries flow.
	tb, err := a.sectionTitle(a.doc.Labels.Summary, ColumnRight)
	if err != nil {
		return c, err
	}
	c = ensureRoom(a.geo, c, ColumnRight, titleHeight(tb)+b.LineHeight)
	c = a.drawTitle(c, ColumnRight, tb)
	return a.text(c, ColumnRight, a.geo.RightX, b, a.pal.Text), nil
}

func (a *assembly) experience(c Cursor) (Cursor, error) {
	var items []stack
	for _, e := range a.doc.Experience {
		pos, err := a.block(e.Position, ColumnRight, a.typo.ItemTitle, true)
		if err != nil {
			return c, err
		}
		company, err := a.block(e.Company, ColumnRight, a.typo.Body, true)
		if err != nil {
			return c, err
		}
		meta, err := a.block(joinNonEmpty(" | ", e.Period, e.Location), ColumnRight, a.typo.Small, false)
		if err != nil {
			return c, err
		}
		desc, err := a.block(e.Description, ColumnRight, a.typo.Body, false)
		if err != nil {
			return c, err
		}
		s := stack{
			{b: pos, color: a.pal.Heading},
			{b: company, color: a.pal.Accent},
			{b: meta, color: a.pal.Muted},
			{b: desc, color: a.pal.Text, gap: smallGap},
		}
		for i, r := range e.Responsibilities {
			rb, err := a.measure(strings.TrimSpace(r), ColumnRight, bulletIndent, a.typo.font(a.typo.Body))
			if err != nil {
				return c, err
			}
			gap := 0.0
			if i == 0 {
				gap = smallGap
			}
			s = append(s, part{b: rb, color: a.pal.Text, bullet: true, gap: gap})
		}
		items = append(items, s)
	}
	return a.titled(c, ColumnRight, a.doc.Labels.Experience, items, itemGap)
}

func (a *assembly) education(c Cursor) (Cursor, error) {
	var items []stack
	for _, e := range a.doc.Education {
		degree, err := a.block(e.Degree, ColumnRight, a.typo.ItemTitle, true)
		if err != nil {
			return c, err
		}
		inst, err := a.block(e.Institution, ColumnRight, a.typo.Body, false)
		if err != nil {
			return c, err
		}
		period, err := a.block(e.Period, ColumnRight, a.typo.Small, false)
		if err != nil {
			return c, err
		}
		items = append(items, stack{
			{b: degree, color: a.pal.Heading},
			{b: inst, color: a.pal.Accent},
			{b: period, color: a.pal.Muted},
		})
	}
	return a.titled(c, ColumnRight, a.doc.Labels.Education, items, itemGap)
}

func (a *assembly) certificates(c Cursor) (Cursor, error) {
	l := a.doc.Labels
	var items []stack
	for _, cert := range a.doc.Certificates {
		title, err := a.block(cert.Title, ColumnRight, a.typo.ItemTitle, true)
		if err != nil {
			return c, err
		}
		issuer, err := a.block(cert.Issuer, ColumnRight, a.typo.Small, false)
		if err != nil {
			return c, err
		}
		s := stack{
			{b: title, color: a.pal.Heading},
			{b: issuer, color: a.pal.Muted},
		}
		if cert.Link != "" {
			caption := l.ViewCertificate
			if caption == "" {
				caption = displayURL(cert.Link)
			}
			lb, err := a.block(caption, ColumnRight, a.typo.Small, false)
			if err != nil {
				return c, err
			}
			s = append(s, part{b: lb, color: a.pal.Link, url: cert.Link, gap: linkTopMargin})
		}
		items = append(items, s)
	}
	return a.titled(c, ColumnRight, l.Certificates, items, itemGap)
}

func (a *assembly) projects(c Cursor) (Cursor, error) {
	l := a.doc.Labels
	projects := a.doc.Projects
	if a.projectLimit >= 0 && len(projects) > a.projectLimit {
		projects = projects[:a.projectLimit]
	}
	var items []stack
	for _, p := range projects {
		title, err := a.block(p.Title, ColumnRight, a.typo.ItemTitle, true)
		if err != nil {
			return c, err
		}
		desc, err := a.block(p.Description, ColumnRight, a.typo.Body, false)
		if err != nil {
			return c, err
		}
		s := stack{
			{b: title, color: a.pal.Heading},
			{b: desc, color: a.pal.Text, gap: smallGap},
		}
		if url, source := p.link(); url != "" {
			caption := l.ViewProject
			if source && l.ViewSource != "" {
				caption = l.ViewSource
			}
			lb, err := a.block(caption, ColumnRight, a.typo.Small, false)
			if err != nil {
				return c, err
			}
			s = append(s, part{b: lb, color: a.pal.Link, url: url, gap: linkTopMargin})
		}
		items = append(items, s)
	}
	return a.titled(c, ColumnRight, l.Projects, items, itemGap)
}

func (a *assembly) github(c Cursor) (Cursor, error) {
	url := strings.TrimSpace(a.doc.PersonalInfo.GitHub)
	if url == "" {
		return c, nil
	}
	l := a.doc.Labels
	text, err := a.block(l.GitHubText, ColumnRight, a.typo.Body, false)
	if err != nil {
		return c, err
	}
	caption := displayURL(url)
	lb, err := a.block(caption, ColumnRight, a.typo.Body, false)
	if err != nil {
		return c, err
	}
	return a.titled(c, ColumnRight, l.GitHub, []stack{{
		{b: text, color: a.pal.Text},
		{b: lb, color: a.pal.Link, url: url, gap: linkTopMargin},
	}}, itemGap)
}

func mailto(email string) string {
	if email = strings.TrimSpace(email); email == "" {
		return ""
	}
	return "mailto:" + email
}

// displayURL drops the scheme and a trailing slash.
func displayURL(u string) string {
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	return strings.TrimSuffix(u, "/")
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
