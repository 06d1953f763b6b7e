package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	resumepdf "github.com/porticus-lab/go-resume-pdf"
)

const fixtures = "../../testdata"

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "resume.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestImportAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	langs, err := s.Import(ctx, fixtures)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if want := []string{"de", "en", "es"}; !slices.Equal(langs, want) {
		t.Errorf("Import = %v, want %v", langs, want)
	}

	listed, err := s.Languages(ctx)
	if err != nil {
		t.Fatalf("Languages: %v", err)
	}
	if !slices.Equal(listed, langs) {
		t.Errorf("Languages = %v, want %v", listed, langs)
	}

	doc, err := s.Get(ctx, "en")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Content.PersonalInfo.Name != "Alex Morgan" {
		t.Errorf("name = %q", doc.Content.PersonalInfo.Name)
	}
	if doc.Revision != 1 {
		t.Errorf("revision = %d, want 1", doc.Revision)
	}
	if !doc.UpdatedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("updated at = %v", doc.UpdatedAt)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "fr")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(fr) error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(context.Background(), "fr"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(fr) error = %v, want ErrNotFound", err)
	}
}

func TestPutReplacesAndBumpsRevision(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.Import(ctx, fixtures); err != nil {
		t.Fatal(err)
	}
	doc, err := s.Get(ctx, "es")
	if err != nil {
		t.Fatal(err)
	}
	doc.Content.PersonalInfo.Title = "Arquitecto"
	if err := s.Put(ctx, doc.Content); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "es")
	if err != nil {
		t.Fatal(err)
	}
	if got.Content.PersonalInfo.Title != "Arquitecto" {
		t.Errorf("title = %q, want Arquitecto", got.Content.PersonalInfo.Title)
	}
	if got.Revision != 2 {
		t.Errorf("revision = %d, want 2", got.Revision)
	}
}

func TestSetField(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.Import(ctx, fixtures); err != nil {
		t.Fatal(err)
	}

	if err := s.SetField(ctx, "en", "experience.0.position", json.RawMessage(`"Staff Engineer"`)); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if err := s.SetField(ctx, "en", "skills.programming.0.level", json.RawMessage(`42`)); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	doc, err := s.Get(ctx, "en")
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Content.Experience[0].Position; got != "Staff Engineer" {
		t.Errorf("position = %q", got)
	}
	if got := doc.Content.Skills.Programming[0].Level; got != 42 {
		t.Errorf("level = %v, want 42", got)
	}
	if doc.Revision != 3 {
		t.Errorf("revision = %d, want 3", doc.Revision)
	}
}

func TestSetFieldAppends(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.Import(ctx, fixtures); err != nil {
		t.Fatal(err)
	}
	before, err := s.Get(ctx, "en")
	if err != nil {
		t.Fatal(err)
	}
	n := len(before.Content.Summary)

	key := "summary." + string(rune('0'+n))
	if err := s.SetField(ctx, "en", key, json.RawMessage(`"Open source maintainer."`)); err != nil {
		t.Fatalf("SetField(%s): %v", key, err)
	}
	after, err := s.Get(ctx, "en")
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Content.Summary) != n+1 || after.Content.Summary[n] != "Open source maintainer." {
		t.Errorf("summary = %q", after.Content.Summary)
	}
}

func TestSetFieldRejects(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.Import(ctx, fixtures); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		path  string
		value string
		is    error
	}{
		{"empty path", "", `"x"`, ErrInvalidPath},
		{"empty segment", "experience..position", `"x"`, ErrInvalidPath},
		{"language", "language", `"fr"`, ErrInvalidPath},
		{"index out of range", "experience.99.position", `"x"`, ErrInvalidPath},
		{"inside scalar", "personalInfo.name.first", `"x"`, ErrInvalidPath},
		{"unknown field", "personalInfo.nickname", `"x"`, nil},
		{"wrong type", "skills.programming.0.level", `"high"`, nil},
		{"bad json", "personalInfo.name", `{`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.SetField(ctx, "en", tt.path, json.RawMessage(tt.value))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
		})
	}

	doc, err := s.Get(ctx, "en")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Revision != 1 {
		t.Errorf("rejected edits were written: revision = %d", doc.Revision)
	}
}

func TestSetFieldChecks(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.Import(ctx, fixtures); err != nil {
		t.Fatal(err)
	}
	errRejected := errors.New("rejected")
	var seen string
	check := func(c *resumepdf.Content) error {
		seen = c.Language + ":" + c.PersonalInfo.Name
		return errRejected
	}
	err := s.SetField(ctx, "es", "personalInfo.name", json.RawMessage(`"Ana"`), check)
	if !errors.Is(err, errRejected) {
		t.Fatalf("error = %v, want check error", err)
	}
	if seen != "es:Ana" {
		t.Errorf("check saw %q, want the edited document", seen)
	}
	doc, err := s.Get(ctx, "es")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Revision != 1 || doc.Content.PersonalInfo.Name == "Ana" {
		t.Error("rejected edit was written")
	}
}

func TestSetFieldMissingDocument(t *testing.T) {
	s := openTestStore(t)
	err := s.SetField(context.Background(), "fr", "personalInfo.name", json.RawMessage(`"x"`))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.Import(ctx, fixtures); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "de"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	langs, err := s.Languages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"en", "es"}; !slices.Equal(langs, want) {
		t.Errorf("Languages = %v, want %v", langs, want)
	}
}

func TestDeleteKeepsRevisionsIncreasing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.Import(ctx, fixtures); err != nil {
		t.Fatal(err)
	}
	before, err := s.Get(ctx, "de")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "de"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "de"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
	if err := s.SetField(ctx, "de", "personalInfo.name", json.RawMessage(`"x"`)); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetField on deleted document error = %v, want ErrNotFound", err)
	}
	if err := s.Put(ctx, before.Content); err != nil {
		t.Fatal(err)
	}
	after, err := s.Get(ctx, "de")
	if err != nil {
		t.Fatal(err)
	}
	if after.Revision <= before.Revision {
		t.Errorf("revision after recreate = %d, want more than %d", after.Revision, before.Revision)
	}
}
