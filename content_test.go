package resumepdf

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestLoadContent(t *testing.T) {
	c, err := LoadContent(strings.NewReader(`{
		"language": "fr",
		"personalInfo": {"name": "Camille Roux", "email": "camille@example.com"},
		"summary": ["Une ligne."]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Language != "fr" || c.PersonalInfo.Name != "Camille Roux" || len(c.Summary) != 1 {
		t.Errorf("decoded %+v", c)
	}
}

func TestLoadContent_RejectsUnknownFields(t *testing.T) {
	_, err := LoadContent(strings.NewReader(`{"personalInfo": {"name": "A"}, "sumary": ["typo"]}`))
	if err == nil || !strings.Contains(err.Error(), "sumary") {
		t.Errorf("error = %v, want one naming the unknown field", err)
	}
}

func TestLoadContent_Malformed(t *testing.T) {
	if _, err := LoadContent(strings.NewReader(`{"personalInfo": `)); err == nil {
		t.Error("truncated document accepted")
	}
}

func TestLoadContentFile_LanguageFromName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pt.json")
	if err := os.WriteFile(path, []byte(`{"personalInfo": {"name": "Rui Costa"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadContentFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Language != "pt" {
		t.Errorf("Language = %q, want pt", c.Language)
	}
}

func TestLoadContentFile_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadContentFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadContentFile(bad)
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("error = %v, want one naming the file", err)
	}
}

func TestLoadContentDir(t *testing.T) {
	docs, err := LoadContentDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	var langs []string
	for lang, c := range docs {
		if c.Language != lang {
			t.Errorf("docs[%q].Language = %q", lang, c.Language)
		}
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	if want := []string{"de", "en", "es"}; !slices.Equal(langs, want) {
		t.Errorf("languages = %v, want %v", langs, want)
	}
}

func TestProjectLink(t *testing.T) {
	tests := []struct {
		p      Project
		url    string
		source bool
	}{
		{Project{LiveLink: "https://a.dev", SourceLink: "https://github.com/a"}, "https://a.dev", false},
		{Project{SourceLink: "https://github.com/a"}, "https://github.com/a", true},
		{Project{}, "", false},
	}
	for _, tt := range tests {
		url, source := tt.p.link()
		if url != tt.url || source != tt.source {
			t.Errorf("%+v.link() = %q, %v; want %q, %v", tt.p, url, source, tt.url, tt.source)
		}
	}
}

func TestDisplayURL(t *testing.T) {
	for in, want := range map[string]string{
		"https://github.com/samlee/": "github.com/samlee",
		"http://example.com":         "example.com",
		"example.com/x":              "example.com/x",
	} {
		if got := displayURL(in); got != want {
			t.Errorf("displayURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMailtoAndJoin(t *testing.T) {
	if got := mailto("  a@b.c "); got != "mailto:a@b.c" {
		t.Errorf("mailto = %q", got)
	}
	if got := mailto(" "); got != "" {
		t.Errorf("mailto of blank = %q", got)
	}
	if got := joinNonEmpty(" | ", "Berlin", " ", "Remote"); got != "Berlin | Remote" {
		t.Errorf("joinNonEmpty = %q", got)
	}
}
