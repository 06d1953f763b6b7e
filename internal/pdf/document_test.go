package pdf

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

// testPage describes one page of a hand-built PDF.
type testPage struct {
	content []byte
	extra   string // additional page dictionary entries
	deflate bool
}

// buildTestPDF creates a minimal valid PDF. The MediaBox is set on the
// page tree root only, so every page inherits it.
func buildTestPDF(pages []testPage, info string) []byte {
	var buf bytes.Buffer
	offsets := map[int]int{}
	obj := func(id int, body string) {
		offsets[id] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", id, body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	fontID := 3 + 2*len(pages)
	var kids []string
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}
	obj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 595.28 841.89] >>",
		strings.Join(kids, " "), len(pages)))

	for i, p := range pages {
		pageID, csID := 3+2*i, 4+2*i
		obj(pageID, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> %s >>",
			csID, fontID, p.extra))
		data, filter := p.content, ""
		if p.deflate {
			var z bytes.Buffer
			w := zlib.NewWriter(&z)
			w.Write(p.content)
			w.Close()
			data, filter = z.Bytes(), " /Filter /FlateDecode"
		}
		offsets[csID] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Length %d%s >>\nstream\n", csID, len(data), filter)
		buf.Write(data)
		buf.WriteString("\nendstream\nendobj\n")
	}
	obj(fontID, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	size := fontID + 1
	trailer := fmt.Sprintf("/Size %d /Root 1 0 R", size)
	if info != "" {
		obj(size, info)
		size++
		trailer = fmt.Sprintf("/Size %d /Root 1 0 R /Info %d 0 R", size, size-1)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", size)
	for id := 1; id < size; id++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[id])
	}
	fmt.Fprintf(&buf, "trailer\n<< %s >>\nstartxref\n%d\n%%%%EOF\n", trailer, xref)
	return buf.Bytes()
}

func mustLoad(t *testing.T, data []byte) *Document {
	t.Helper()
	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return doc
}

func mustPages(t *testing.T, doc *Document) []*Page {
	t.Helper()
	pages, err := doc.Pages()
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	return pages
}

func TestLoad_NotPDF(t *testing.T) {
	_, err := Load([]byte("hello"))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("Load = %v, want ErrNotPDF", err)
	}
}

func TestVersion(t *testing.T) {
	doc := mustLoad(t, buildTestPDF([]testPage{{content: []byte("BT ET")}}, ""))
	if v := doc.Version(); v != "1.4" {
		t.Errorf("Version() = %q, want 1.4", v)
	}
}

func TestPages_InheritMediaBox(t *testing.T) {
	doc := mustLoad(t, buildTestPDF([]testPage{
		{content: []byte("BT ET")},
		{content: []byte("BT ET")},
		{content: []byte("BT ET")},
	}, ""))
	pages := mustPages(t, doc)
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	for i, p := range pages {
		if math.Abs(p.Width()-595.28) > 0.01 || math.Abs(p.Height()-841.89) > 0.01 {
			t.Errorf("page %d: %.2fx%.2f, want A4", i, p.Width(), p.Height())
		}
	}
}

func TestDraws_Text(t *testing.T) {
	doc := mustLoad(t, buildTestPDF([]testPage{
		{content: []byte("BT /F1 12 Tf 100 700 Td (Hello, World!) Tj ET")},
		{content: []byte("BT /F1 9 Tf 50 60 Td [(Go) -200 (PDF)] TJ ET q 2 0 0 2 0 0 cm BT /F1 10 Tf 10 20 Td (Scaled) Tj ET Q"), deflate: true},
	}, ""))
	pages := mustPages(t, doc)

	first, err := pages[0].Draws()
	if err != nil {
		t.Fatalf("Draws: %v", err)
	}
	if len(first.Spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(first.Spans))
	}
	if s := first.Spans[0]; s.Text != "Hello, World!" || s.X != 100 || s.Y != 700 || s.Size != 12 || s.Font != "F1" {
		t.Errorf("span = %+v", s)
	}

	second, err := pages[1].Draws()
	if err != nil {
		t.Fatalf("Draws: %v", err)
	}
	if got, want := second.Text(), "GoPDF\nScaled"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if s := second.Spans[1]; s.X != 20 || s.Y != 40 || s.Size != 20 {
		t.Errorf("scaled span = %+v, want origin (20,40) size 20", s)
	}
}

func TestDraws_WinAnsiText(t *testing.T) {
	// \351 is é and \200 the euro sign in WinAnsiEncoding.
	doc := mustLoad(t, buildTestPDF([]testPage{
		{content: []byte(`BT /F1 10 Tf 10 10 Td (Caf\351 \200 \(x\)) Tj ET`)},
	}, ""))
	c, err := mustPages(t, doc)[0].Draws()
	if err != nil {
		t.Fatalf("Draws: %v", err)
	}
	if got, want := c.Text(), "Café € (x)"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestDraws_FilledRects(t *testing.T) {
	// Only rects that are filled count; the stroked one does not.
	cs := "0.118 0.161 0.231 rg 0 0 100 -841.89 re f 10 10 5 5 re S 1 g 20 30 40 50 re f"
	doc := mustLoad(t, buildTestPDF([]testPage{{content: []byte(cs)}}, ""))
	c, err := mustPages(t, doc)[0].Draws()
	if err != nil {
		t.Fatalf("Draws: %v", err)
	}
	if len(c.Rects) != 2 {
		t.Fatalf("got %d rects, want 2: %+v", len(c.Rects), c.Rects)
	}
	band := c.Rects[0]
	if band.X != 0 || band.W != 100 || math.Abs(band.Y+841.89) > 1e-9 || math.Abs(band.H-841.89) > 1e-9 {
		t.Errorf("band = %+v", band)
	}
	if band.Fill != [3]float64{0.118, 0.161, 0.231} {
		t.Errorf("band fill = %v", band.Fill)
	}
	if c.Rects[1].Fill != [3]float64{1, 1, 1} {
		t.Errorf("gray fill = %v", c.Rects[1].Fill)
	}
	if !c.Rects[1].Contains(30, 40) || c.Rects[1].Contains(10, 10) {
		t.Error("Contains gave the wrong answer")
	}
}

func TestLinks(t *testing.T) {
	annots := `/Annots [<< /Type /Annot /Subtype /Link /Rect [10 20 110 30] /Border [0 0 0] /A << /S /URI /URI (https://example.com/a) >> >> << /Type /Annot /Subtype /Text /Rect [0 0 1 1] >>]`
	doc := mustLoad(t, buildTestPDF([]testPage{
		{content: []byte("BT ET"), extra: annots},
		{content: []byte("BT ET")},
	}, ""))
	pages := mustPages(t, doc)

	links, err := pages[0].Links()
	if err != nil {
		t.Fatalf("Links: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].URI != "https://example.com/a" || links[0].Rect != [4]float64{10, 20, 110, 30} {
		t.Errorf("link = %+v", links[0])
	}

	none, err := pages[1].Links()
	if err != nil || len(none) != 0 {
		t.Errorf("page 2 links = %v, %v; want none", none, err)
	}
}

func TestInfo(t *testing.T) {
	// <FEFF00C9> is É in UTF-16BE with a byte order mark.
	doc := mustLoad(t, buildTestPDF([]testPage{{content: []byte("BT ET")}},
		"<< /Title <FEFF00C9> /Creator (go-resume-pdf) /CreationDate (D:20240102030405) >>"))
	info, err := doc.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	want := map[string]string{"Title": "É", "Creator": "go-resume-pdf", "CreationDate": "D:20240102030405"}
	for k, v := range want {
		if info[k] != v {
			t.Errorf("Info[%s] = %q, want %q", k, info[k], v)
		}
	}
}

func TestScanner_BasicTypes(t *testing.T) {
	s := newScanner([]byte(`null true false 42 -3.5 (a\(b\)c) <48454C4C4F> /A#20B [1 2 0 R 3] << /K /V >>`), 0)
	next := func() *Object {
		t.Helper()
		o, err := s.object()
		if err != nil {
			t.Fatalf("object: %v", err)
		}
		return o
	}

	if o := next(); o.Kind != Null {
		t.Errorf("want null, got %v", o.Kind)
	}
	if o := next(); o.Kind != Bool || !o.Bool {
		t.Errorf("want true, got %+v", o)
	}
	if o := next(); o.Kind != Bool || o.Bool {
		t.Errorf("want false, got %+v", o)
	}
	if o := next(); o.Kind != Int || o.Int != 42 {
		t.Errorf("want 42, got %+v", o)
	}
	if o := next(); o.Kind != Real || o.Real != -3.5 {
		t.Errorf("want -3.5, got %+v", o)
	}
	if o := next(); o.Kind != String || string(o.Str) != "a(b)c" {
		t.Errorf("want a(b)c, got %q", o.Str)
	}
	if o := next(); o.Kind != String || string(o.Str) != "HELLO" {
		t.Errorf("want HELLO, got %q", o.Str)
	}
	if o := next(); o.Kind != Name || o.Name != "A B" {
		t.Errorf("want name 'A B', got %q", o.Name)
	}
	arr := next()
	if arr.Kind != Array || len(arr.Array) != 3 {
		t.Fatalf("want array of 3, got %+v", arr)
	}
	if r := arr.Array[1]; r.Kind != Ref || r.Ref != (Reference{Number: 2}) {
		t.Errorf("want ref 2 0 R, got %+v", r)
	}
	if d := next(); d.Kind != Dictionary || d.Dict["K"].Name != "V" {
		t.Errorf("want dict, got %+v", d)
	}
}

func TestDecodeStream_ASCIIHex(t *testing.T) {
	for _, in := range []string{"48656c6c6f>", "48 65 6c 6c 6f>", "4865 6c6c 6f>"} {
		got, err := decodeStream(Dict{"Filter": {Kind: Name, Name: "ASCIIHexDecode"}}, []byte(in))
		if err != nil {
			t.Errorf("decodeStream(%q): %v", in, err)
			continue
		}
		if string(got) != "Hello" {
			t.Errorf("decodeStream(%q) = %q, want Hello", in, got)
		}
	}
}

func TestDecodeStream_UnsupportedFilter(t *testing.T) {
	_, err := decodeStream(Dict{"Filter": {Kind: Name, Name: "LZWDecode"}}, []byte("x"))
	if err == nil {
		t.Fatal("expected an error for LZWDecode")
	}
}
