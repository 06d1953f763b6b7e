// resumepdf renders résumé content documents to PDF, inspects the
// result and serves both over HTTP.
//
// Usage:
//
//	resumepdf generate [options] <content.json>
//	resumepdf inspect [options] <file.pdf>
//	resumepdf serve
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	resumepdf "github.com/porticus-lab/go-resume-pdf"
	"github.com/porticus-lab/go-resume-pdf/internal/pdf"
	"github.com/porticus-lab/go-resume-pdf/internal/server"
	"github.com/porticus-lab/go-resume-pdf/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "serve":
		err = runServe()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`resumepdf - two-column résumé PDF generator

Usage:
  resumepdf generate [options] <content.json>
  resumepdf inspect [options] <file.pdf>
  resumepdf serve

Commands:
  generate  Render a content document to PDF
  inspect   Show pages, metadata, links and text of a PDF
  serve     Run the HTTP service

Generate options:
  -o <file>         Output file (default: <name>-cv-<lang>.pdf)
  -backend <name>   fpdf or chrome (default: fpdf)
  -sections <list>  Comma-separated section order (default: all)
  -projects <n>     Projects to show, -1 for all (default: 2)
  -html             Write the layout as HTML instead of PDF
  -chrome <path>    Chrome executable for the chrome backend
  -download         Download Chromium if none is found

Inspect options:
  -f <format>       text or json (default: text)

Serve environment (a .env file is loaded when present):
  PORT                 Listen port (default: 8080)
  RESUME_DB            SQLite database path (default: resume.db)
  RESUME_CONTENT_DIR   Directory of <lang>.json imported into an empty database
  RESUME_ADMIN_TOKEN   Bearer token for /admin; admin is disabled when unset
  RESUME_BACKEND       fpdf or chrome (default: fpdf)
  RESUME_DEFAULT_LANG  Language served at /resume (default: en)
  CHROME_PATH          Chrome executable for the chrome backend

Examples:
  resumepdf generate testdata/en.json
  resumepdf generate -backend chrome -o cv.pdf testdata/es.json
  resumepdf generate -sections header,contact,summary,experience en.json
  resumepdf inspect -f json alex-morgan-cv-en.pdf
`)
}

// backendFor returns the named rendering backend and a function that
// releases it.
func backendFor(name, chromePath string, download bool) (resumepdf.Backend, func(), error) {
	switch name {
	case "", "fpdf":
		return resumepdf.FPDF(), func() {}, nil
	case "chrome":
		var opts []resumepdf.ConverterOption
		if chromePath != "" {
			opts = append(opts, resumepdf.WithChromePath(chromePath))
		}
		if download {
			opts = append(opts, resumepdf.WithAutoDownload())
		}
		c, err := resumepdf.NewConverter(opts...)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { c.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend: %s", name)
	}
}

// runGenerate implements the "generate" command.
func runGenerate(args []string) error {
	var (
		outputFile string
		backend    string
		sections   string
		chromePath string
		inputFile  string
		projects   = 2
		asHTML     bool
		download   bool
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "-backend", "-sections", "-projects", "-chrome":
			flag := args[i]
			i++
			if i >= len(args) {
				return fmt.Errorf("%s requires an argument", flag)
			}
			switch flag {
			case "-o":
				outputFile = args[i]
			case "-backend":
				backend = args[i]
			case "-sections":
				sections = args[i]
			case "-chrome":
				chromePath = args[i]
			case "-projects":
				n, err := strconv.Atoi(args[i])
				if err != nil {
					return fmt.Errorf("invalid project count %q", args[i])
				}
				projects = n
			}
		case "-html":
			asHTML = true
		case "-download":
			download = true
		default:
			if strings.HasPrefix(args[i], "-") {
				return fmt.Errorf("unknown option: %s", args[i])
			}
			inputFile = args[i]
		}
	}
	if inputFile == "" {
		return fmt.Errorf("no input file specified")
	}

	content, err := resumepdf.LoadContentFile(inputFile)
	if err != nil {
		return err
	}

	opts := []resumepdf.Option{resumepdf.WithProjectLimit(projects)}
	if sections != "" {
		var list []resumepdf.Section
		for _, s := range strings.Split(sections, ",") {
			list = append(list, resumepdf.Section(strings.TrimSpace(s)))
		}
		opts = append(opts, resumepdf.WithSections(list...))
	}
	if !asHTML {
		b, release, err := backendFor(backend, chromePath, download)
		if err != nil {
			return err
		}
		defer release()
		opts = append(opts, resumepdf.WithBackend(b))
	}
	gen, err := resumepdf.NewGenerator(opts...)
	if err != nil {
		return err
	}

	if outputFile == "" {
		outputFile = resumepdf.Filename(content.PersonalInfo.Name, content.Language)
		if asHTML {
			outputFile = strings.TrimSuffix(outputFile, ".pdf") + ".html"
		}
	}

	if asHTML {
		l, err := gen.Layout(content)
		if err != nil {
			return err
		}
		return writeHTMLFile(outputFile, l, gen.Metadata(content))
	}

	res, err := gen.Generate(context.Background(), content)
	if err != nil {
		return err
	}
	defer res.Release()
	if err := res.WriteToFile(outputFile, 0o644); err != nil {
		return err
	}
	fmt.Printf("%s: %d page(s), %d bytes\n", outputFile, res.Pages(), res.Len())
	return nil
}

func writeHTMLFile(path string, l *resumepdf.Layout, meta resumepdf.Metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := resumepdf.WriteHTML(w, l, meta); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("%s: %d page(s)\n", path, l.PageCount())
	return nil
}

type pageReport struct {
	Page   int      `json:"page"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Links  []string `json:"links,omitempty"`
	Text   string   `json:"text"`
}

type report struct {
	File    string            `json:"file"`
	Version string            `json:"version"`
	Info    map[string]string `json:"info,omitempty"`
	Pages   []pageReport      `json:"pages"`
}

// runInspect implements the "inspect" command.
func runInspect(args []string) error {
	var format, inputFile string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f":
			i++
			if i >= len(args) {
				return fmt.Errorf("-f requires an argument")
			}
			format = args[i]
		default:
			if strings.HasPrefix(args[i], "-") {
				return fmt.Errorf("unknown option: %s", args[i])
			}
			inputFile = args[i]
		}
	}
	if inputFile == "" {
		return fmt.Errorf("no input file specified")
	}

	r, err := inspect(inputFile)
	if err != nil {
		return err
	}
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "", "text":
		printReport(os.Stdout, r)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func inspect(path string) (*report, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := doc.Info()
	if err != nil {
		return nil, fmt.Errorf("reading info: %w", err)
	}
	pages, err := doc.Pages()
	if err != nil {
		return nil, fmt.Errorf("reading pages: %w", err)
	}

	r := &report{File: path, Version: doc.Version(), Info: info}
	for i, p := range pages {
		pr := pageReport{Page: i + 1, Width: p.Width(), Height: p.Height()}
		draws, err := p.Draws()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: page %d: %v\n", i+1, err)
		} else {
			pr.Text = draws.Text()
		}
		links, err := p.Links()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: page %d links: %v\n", i+1, err)
		}
		for _, l := range links {
			pr.Links = append(pr.Links, l.URI)
		}
		r.Pages = append(r.Pages, pr)
	}
	return r, nil
}

func printReport(w io.Writer, r *report) {
	fmt.Fprintf(w, "File:    %s\n", r.File)
	fmt.Fprintf(w, "Version: PDF-%s\n", r.Version)
	for _, k := range []string{"Title", "Author", "Subject", "Creator", "Producer"} {
		if v := r.Info[k]; v != "" {
			fmt.Fprintf(w, "%-8s %s\n", k+":", v)
		}
	}
	fmt.Fprintf(w, "Pages:   %d\n", len(r.Pages))
	for _, p := range r.Pages {
		fmt.Fprintf(w, "\nPage %d: %.0f x %.0f pt\n", p.Page, p.Width, p.Height)
		for _, l := range p.Links {
			fmt.Fprintf(w, "  link: %s\n", l)
		}
		fmt.Fprintln(w, p.Text)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// runServe implements the "serve" command.
func runServe() error {
	ctx := context.Background()

	st, err := store.Open(ctx, getenv("RESUME_DB", "resume.db"))
	if err != nil {
		return err
	}
	defer st.Close()

	if dir := os.Getenv("RESUME_CONTENT_DIR"); dir != "" {
		langs, err := st.Languages(ctx)
		if err != nil {
			return err
		}
		// Imported files seed the database; they never overwrite edits.
		if len(langs) == 0 {
			imported, err := st.Import(ctx, dir)
			if err != nil {
				return err
			}
			log.Printf("Imported %s from %s", strings.Join(imported, ", "), dir)
		}
	}

	backend, release, err := backendFor(getenv("RESUME_BACKEND", "fpdf"), os.Getenv("CHROME_PATH"), false)
	if err != nil {
		return err
	}
	defer release()

	gen, err := resumepdf.NewGenerator(resumepdf.WithBackend(backend))
	if err != nil {
		return err
	}

	token := os.Getenv("RESUME_ADMIN_TOKEN")
	if token == "" {
		log.Println("RESUME_ADMIN_TOKEN not set, admin routes are disabled")
	}
	r := server.New(st, gen, server.Config{
		AdminToken:      token,
		DefaultLanguage: getenv("RESUME_DEFAULT_LANG", "en"),
	})

	port := getenv("PORT", "8080")
	log.Printf("Listening on :%s", port)
	return r.Run(":" + port)
}
