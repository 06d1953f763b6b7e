package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateAndInspect(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cv.pdf")
	if err := runGenerate([]string{"-o", out, "-projects", "-1", "../../testdata/en.json"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	r, err := inspect(out)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if len(r.Pages) == 0 {
		t.Fatal("no pages")
	}
	if r.Info["Author"] != "Alex Morgan" {
		t.Errorf("Author = %q", r.Info["Author"])
	}
	if !strings.Contains(r.Pages[0].Text, "Alex Morgan") {
		t.Error("first page text lacks the name")
	}

	var buf bytes.Buffer
	printReport(&buf, r)
	if !strings.Contains(buf.String(), "Pages:") {
		t.Errorf("report:\n%s", buf.String())
	}
}

func TestGenerateHTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cv.html")
	if err := runGenerate([]string{"-html", "-o", out, "../../testdata/de.json"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<!DOCTYPE html>")) {
		t.Errorf("output does not start with a doctype: %.40q", data)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", nil, "no input file"},
		{"missing value", []string{"-o"}, "-o requires an argument"},
		{"unknown option", []string{"-x", "a.json"}, "unknown option"},
		{"bad projects", []string{"-projects", "two", "a.json"}, "invalid project count"},
		{"unknown backend", []string{"-backend", "latex", "../../testdata/en.json"}, "unknown backend"},
		{"unknown section", []string{"-sections", "header,hobbies", "../../testdata/en.json"}, "unknown section"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runGenerate(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
