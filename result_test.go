package resumepdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var samplePDF = []byte("%PDF-1.4 fake content for testing")

func newResult() *Result {
	return NewResult(samplePDF, 2)
}

func TestResult_Bytes(t *testing.T) {
	r := newResult()
	if !bytes.Equal(r.Bytes(), samplePDF) {
		t.Error("Bytes() did not return original data")
	}
}

func TestResult_Base64(t *testing.T) {
	r := newResult()
	got := r.Base64()
	want := base64.StdEncoding.EncodeToString(samplePDF)
	if got != want {
		t.Errorf("Base64() = %q, want %q", got, want)
	}
}

func TestResult_Reader(t *testing.T) {
	r := newResult()
	reader := r.Reader()
	if reader.Len() != len(samplePDF) {
		t.Errorf("Reader().Len() = %d, want %d", reader.Len(), len(samplePDF))
	}
	buf := make([]byte, len(samplePDF))
	n, err := reader.Read(buf)
	if err != nil {
		t.Fatalf("Reader().Read: %v", err)
	}
	if !bytes.Equal(buf[:n], samplePDF) {
		t.Error("Reader() produced different content")
	}
}

func TestResult_WriteTo(t *testing.T) {
	r := newResult()
	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(samplePDF)) {
		t.Errorf("WriteTo wrote %d bytes, want %d", n, len(samplePDF))
	}
	if !bytes.Equal(buf.Bytes(), samplePDF) {
		t.Error("WriteTo produced different content")
	}
}

func TestResult_WriteToFile(t *testing.T) {
	r := newResult()
	path := filepath.Join(t.TempDir(), "test.pdf")
	if err := r.WriteToFile(path, 0o644); err != nil {
		t.Fatalf("WriteToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !bytes.Equal(data, samplePDF) {
		t.Error("WriteToFile produced different content")
	}
}

func TestResult_LenAndPages(t *testing.T) {
	r := newResult()
	if r.Len() != len(samplePDF) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(samplePDF))
	}
	if r.Pages() != 2 {
		t.Errorf("Pages() = %d, want 2", r.Pages())
	}
}

func TestResult_Release(t *testing.T) {
	r := newResult()
	r.Release()
	r.Release()

	if r.Bytes() != nil {
		t.Error("Bytes() after Release is not nil")
	}
	if r.Len() != 0 {
		t.Errorf("Len() after Release = %d", r.Len())
	}
	if _, err := r.WriteTo(&bytes.Buffer{}); !errors.Is(err, ErrReleased) {
		t.Errorf("WriteTo after Release: %v, want ErrReleased", err)
	}
	path := filepath.Join(t.TempDir(), "released.pdf")
	if err := r.WriteToFile(path, 0o644); !errors.Is(err, ErrReleased) {
		t.Errorf("WriteToFile after Release: %v, want ErrReleased", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("WriteToFile created a file after Release")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name, lang, want string
	}{
		{"José García", "es", "jose-garcia-cv-es.pdf"},
		{"Alex Morgan", "en", "alex-morgan-cv-en.pdf"},
		{"  Jürgen  Müller-Lüdenscheidt ", "de", "jurgen-muller-ludenscheidt-cv-de.pdf"},
		{"Ana", "", "ana-cv.pdf"},
		{"", "fr", "cv-fr.pdf"},
		{"Дмитрий", "ru", "cv-ru.pdf"},
	}
	for _, tt := range tests {
		if got := Filename(tt.name, tt.lang); got != tt.want {
			t.Errorf("Filename(%q, %q) = %q, want %q", tt.name, tt.lang, got, tt.want)
		}
	}
}
