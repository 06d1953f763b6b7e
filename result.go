package resumepdf

import (
	"bytes"
	"encoding/base64"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Result holds a generated PDF and provides helpers for common output
// formats such as raw bytes, base64 encoding and streaming readers.
//
// The caller owns the buffer. Release drops it once the document has been
// delivered; afterwards Bytes returns nil and the writers return
// [ErrReleased].
type Result struct {
	mu       sync.Mutex
	data     []byte
	pages    int
	released bool
}

// NewResult wraps the bytes of a PDF with the given number of pages. The
// Result takes ownership of data.
func NewResult(data []byte, pages int) *Result {
	return &Result{data: data, pages: pages}
}

func (r *Result) get() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return nil, ErrReleased
	}
	return r.data, nil
}

// Bytes returns the raw PDF content, or nil after Release.
func (r *Result) Bytes() []byte {
	data, _ := r.get()
	return data
}

// Base64 returns the PDF encoded as a standard base64 string (RFC 4648).
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Bytes())
}

// Reader returns an [*bytes.Reader] over the PDF content.
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.Bytes())
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	data, err := r.get()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// WriteToFile writes the PDF to the file at path, creating it if needed.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	data, err := r.get()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.Bytes())
}

// Pages returns the number of pages in the document.
func (r *Result) Pages() int {
	return r.pages
}

// Release drops the PDF buffer. It is safe to call more than once.
func (r *Result) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = nil
	r.released = true
}

// Filename returns the conventional download name for a résumé:
// the owner's name as a lower-case ASCII slug, "cv" and the language
// code, for example "jose-garcia-cv-es.pdf" for "José García".
func Filename(name, lang string) string {
	var parts []string
	if s := slug(name); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, "cv")
	if s := slug(lang); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "-") + ".pdf"
}

func slug(s string) string {
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(strip, s); err == nil {
		s = folded
	}
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
			dash = false
		case sb.Len() > 0 && !dash:
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
