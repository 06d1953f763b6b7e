// Package resumepdf lays out a localized résumé on a two-column page grid
// and renders it to PDF.
//
// # Generating
//
// Load a content document and generate it with the defaults (A4, all
// sections, the built-in core-font backend):
//
//	content, err := resumepdf.LoadContentFile("content/en.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := resumepdf.Generate(ctx, content)
//
// For repeated generations create a [Generator]:
//
//	g, err := resumepdf.NewGenerator(
//	    resumepdf.WithPageConfig(&resumepdf.PageConfig{Size: resumepdf.Letter}),
//	    resumepdf.WithProjectLimit(3),
//	)
//	res, err := g.Generate(ctx, content)
//
// Use [LoadContentDir] to read every language of a content directory at once.
//
// # Layout
//
// [Generator.Layout] runs pagination without rendering and returns the
// resolved [Layout]: per page, the ordered draw commands in millimetres
// from the top-left corner. The left sidebar and the right main column
// paginate independently, section titles are never stranded at the bottom
// of a column, and the sidebar band is painted on every page.
//
// # Backends
//
// [FPDF] is the default backend. It needs no external processes and only
// supports text in the Windows-1252 character set.
//
// A [Converter] prints the same layout through headless Chrome using the
// Chrome DevTools Protocol. It reuses one browser process:
//
//	c, err := resumepdf.NewConverter(resumepdf.WithTimeout(time.Minute))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	g, err := resumepdf.NewGenerator(resumepdf.WithBackend(c))
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload]:
//
//	c, err := resumepdf.NewConverter(resumepdf.WithAutoDownload())
//
// [WriteHTML] writes the HTML document the Converter prints.
//
// # Results
//
// A [Result] gives access to the generated PDF bytes:
//
//	res.Bytes()                       // []byte
//	res.Base64()                      // base64 string (RFC 4648)
//	res.Reader()                      // *bytes.Reader
//	res.WriteTo(w)                    // io.WriterTo
//	res.WriteToFile("out.pdf", 0o644) // write to disk
//
// [Filename] builds the download name, e.g. "jose-garcia-cv-es.pdf".
package resumepdf
