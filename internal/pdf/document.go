// Package pdf reads back the PDF documents the résumé generator writes:
// page geometry, text runs, filled rectangles and link annotations. It
// handles classic cross-reference tables and Flate or ASCIIHex encoded
// streams, which covers the output of both rendering backends.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrNotPDF is returned by Load for data without a PDF header.
var ErrNotPDF = errors.New("pdf: not a PDF file")

type xrefEntry struct {
	offset int
	inUse  bool
}

// Document is a loaded PDF file.
type Document struct {
	data    []byte
	xref    map[int]xrefEntry
	trailer Dict
	cache   map[int]*Object
}

// Open reads a PDF file from disk.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return Load(data)
}

// Load parses a PDF from raw bytes.
func Load(data []byte) (*Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}
	doc := &Document{
		data:  data,
		xref:  make(map[int]xrefEntry),
		cache: make(map[int]*Object),
	}
	off, err := doc.startXRef()
	if err != nil {
		return nil, err
	}
	// Guard against /Prev loops.
	seen := map[int]bool{}
	for off >= 0 && !seen[off] {
		seen[off] = true
		if off, err = doc.readXRef(off); err != nil {
			return nil, err
		}
	}
	if doc.trailer == nil {
		return nil, errors.New("pdf: missing trailer")
	}
	return doc, nil
}

// Version returns the version from the file header, for example "1.4".
func (doc *Document) Version() string {
	line, _, _ := bytes.Cut(doc.data[len("%PDF-"):], []byte("\n"))
	return strings.TrimSpace(string(line))
}

func (doc *Document) startXRef() (int, error) {
	tail := doc.data[max(0, len(doc.data)-1024):]
	i := bytes.LastIndex(tail, []byte("startxref"))
	if i < 0 {
		return 0, errors.New("pdf: startxref not found")
	}
	s := newScanner(tail, i+len("startxref"))
	off, err := strconv.Atoi(s.token())
	if err != nil {
		return 0, fmt.Errorf("pdf: invalid startxref: %w", err)
	}
	return off, nil
}

// readXRef reads the cross-reference table at off and its trailer. It
// returns the offset of the previous table, or -1.
func (doc *Document) readXRef(off int) (int, error) {
	if off < 0 || off >= len(doc.data) {
		return -1, fmt.Errorf("pdf: xref offset %d out of range", off)
	}
	s := newScanner(doc.data, off)
	if !s.keyword("xref") {
		return -1, fmt.Errorf("pdf: cross-reference streams are not supported (offset %d)", off)
	}
	for !s.keyword("trailer") {
		first, err1 := strconv.Atoi(s.token())
		count, err2 := strconv.Atoi(s.token())
		if err1 != nil || err2 != nil {
			return -1, fmt.Errorf("pdf: malformed xref subsection at offset %d", s.pos)
		}
		for i := 0; i < count; i++ {
			offset, _ := strconv.Atoi(s.token())
			s.token() // generation
			inUse := s.token() == "n"
			if _, ok := doc.xref[first+i]; !ok {
				doc.xref[first+i] = xrefEntry{offset: offset, inUse: inUse}
			}
		}
	}
	t, err := s.object()
	if err != nil {
		return -1, fmt.Errorf("pdf: trailer: %w", err)
	}
	if t.Kind != Dictionary {
		return -1, errors.New("pdf: trailer is not a dictionary")
	}
	if doc.trailer == nil {
		doc.trailer = t.Dict
	}
	if prev, ok := t.Dict.Int("Prev"); ok {
		return int(prev), nil
	}
	return -1, nil
}

// Resolve follows indirect references until it reaches a direct object.
// Missing objects resolve to null.
func (doc *Document) Resolve(o *Object) (*Object, error) {
	for i := 0; o != nil && o.Kind == Ref; i++ {
		if i >= maxDepth {
			return nil, errTooDeep
		}
		var err error
		if o, err = doc.object(o.Ref.Number); err != nil {
			return nil, err
		}
	}
	if o == nil {
		return null, nil
	}
	return o, nil
}

func (doc *Document) object(num int) (*Object, error) {
	if o, ok := doc.cache[num]; ok {
		return o, nil
	}
	e, ok := doc.xref[num]
	if !ok || !e.inUse {
		return null, nil
	}
	if e.offset < 0 || e.offset >= len(doc.data) {
		return nil, fmt.Errorf("pdf: object %d offset %d out of range", num, e.offset)
	}
	s := newScanner(doc.data, e.offset)
	s.token() // object number
	s.token() // generation
	if !s.keyword("obj") {
		return nil, fmt.Errorf("pdf: object %d: expected obj at offset %d", num, e.offset)
	}
	o, err := s.object()
	if err != nil {
		return nil, fmt.Errorf("pdf: object %d: %w", num, err)
	}
	doc.cache[num] = o
	return o, nil
}

// get resolves d[key].
func (doc *Document) get(d Dict, key string) (*Object, error) {
	return doc.Resolve(d[key])
}

func (doc *Document) dict(d Dict, key string) (Dict, error) {
	o, err := doc.get(d, key)
	if err != nil {
		return nil, err
	}
	if o.Kind != Dictionary && o.Kind != Stream {
		return nil, nil
	}
	return o.Dict, nil
}

// Info returns the document information dictionary with string values
// decoded. Missing entries are absent from the map.
func (doc *Document) Info() (map[string]string, error) {
	d, err := doc.dict(doc.trailer, "Info")
	if err != nil {
		return nil, err
	}
	info := make(map[string]string, len(d))
	for k := range d {
		o, err := doc.get(d, k)
		if err != nil {
			return nil, err
		}
		if o.Kind == String {
			info[k] = decodeTextString(o.Str)
		}
	}
	return info, nil
}

// Page is one leaf of the page tree with its inherited attributes applied.
type Page struct {
	doc  *Document
	dict Dict

	// MediaBox is the page rectangle in points: llx, lly, urx, ury.
	MediaBox [4]float64
}

// Width returns the page width in points.
func (p *Page) Width() float64 { return p.MediaBox[2] - p.MediaBox[0] }

// Height returns the page height in points.
func (p *Page) Height() float64 { return p.MediaBox[3] - p.MediaBox[1] }

// Pages returns all pages in document order.
func (doc *Document) Pages() ([]*Page, error) {
	root, err := doc.dict(doc.trailer, "Root")
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errors.New("pdf: missing document catalog")
	}
	tree, err := doc.dict(root, "Pages")
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, errors.New("pdf: missing page tree")
	}
	var pages []*Page
	if err := doc.walk(tree, nil, &pages, 0); err != nil {
		return nil, err
	}
	return pages, nil
}

// walk collects the leaves under node. inherited carries MediaBox down
// from ancestor nodes.
func (doc *Document) walk(node Dict, inherited *Object, pages *[]*Page, depth int) error {
	if depth > maxDepth {
		return errTooDeep
	}
	if mb, ok := node["MediaBox"]; ok {
		inherited = mb
	}
	if t, _ := node.Name("Type"); t == "Page" {
		p := &Page{doc: doc, dict: node}
		box, err := doc.Resolve(inherited)
		if err != nil {
			return err
		}
		if box.Kind == Array && len(box.Array) == 4 {
			for i, v := range box.Array {
				p.MediaBox[i], _ = v.Number()
			}
		}
		*pages = append(*pages, p)
		return nil
	}
	kids, err := doc.get(node, "Kids")
	if err != nil {
		return err
	}
	for _, k := range kids.Array {
		kid, err := doc.Resolve(k)
		if err != nil {
			return err
		}
		if kid.Kind == Dictionary {
			if err := doc.walk(kid.Dict, inherited, pages, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// Content returns the decoded content streams of the page, concatenated.
func (p *Page) Content() ([]byte, error) {
	o, err := p.doc.get(p.dict, "Contents")
	if err != nil {
		return nil, err
	}
	streams := []*Object{o}
	if o.Kind == Array {
		streams = o.Array
	}
	var out []byte
	for _, s := range streams {
		so, err := p.doc.Resolve(s)
		if err != nil {
			return nil, err
		}
		if so.Kind != Stream {
			continue
		}
		data, err := decodeStream(so.Dict, so.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, data...)
		out = append(out, '\n')
	}
	return out, nil
}
