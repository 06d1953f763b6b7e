// Package server exposes the résumé store and generator over HTTP.
package server

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	resumepdf "github.com/porticus-lab/go-resume-pdf"
	"github.com/porticus-lab/go-resume-pdf/internal/store"
)

// Config configures the HTTP service.
type Config struct {
	// AdminToken guards the /admin routes. When empty the admin routes
	// reject every request.
	AdminToken string

	// DefaultLanguage is served by GET /resume.
	DefaultLanguage string
}

type cached struct {
	revision int64
	res      *resumepdf.Result
}

type server struct {
	store *store.Store
	gen   *resumepdf.Generator
	cfg   Config

	mu    sync.Mutex
	cache map[string]cached
}

// New returns the gin engine serving st through gen. The engine uses
// gin's logger and recovery middleware.
func New(st *store.Store, gen *resumepdf.Generator, cfg Config) *gin.Engine {
	s := &server{store: st, gen: gen, cfg: cfg, cache: make(map[string]cached)}

	r := gin.Default()
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/languages", s.languages)
	r.GET("/content/:lang", s.content)
	r.GET("/resume", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/resume/"+s.cfg.DefaultLanguage)
	})
	r.GET("/resume/:lang", s.resume)
	r.GET("/resume/:lang/html", s.html)

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())
	{
		admin.PUT("/content/:lang", s.putContent)
		admin.PATCH("/content/:lang", s.patchContent)
		admin.DELETE("/content/:lang", s.deleteContent)
	}
	return r
}

func (s *server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if s.cfg.AdminToken == "" || !ok ||
			subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func (s *server) languages(c *gin.Context) {
	langs, err := s.store.Languages(c.Request.Context())
	if err != nil {
		log.Printf("Error listing languages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list languages"})
		return
	}
	if langs == nil {
		langs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"languages": langs, "default": s.cfg.DefaultLanguage})
}

func (s *server) content(c *gin.Context) {
	doc, ok := s.document(c)
	if !ok {
		return
	}
	c.Header("ETag", etag(c.Param("lang"), doc.Revision))
	c.JSON(http.StatusOK, doc.Content)
}

// document loads the document named by the :lang parameter, writing the
// error response itself when that fails.
func (s *server) document(c *gin.Context) (*store.Document, bool) {
	lang := c.Param("lang")
	doc, err := s.store.Get(c.Request.Context(), lang)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No content for language " + lang})
		return nil, false
	}
	if err != nil {
		log.Printf("Error loading content %s: %v", lang, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
		return nil, false
	}
	return doc, true
}

func (s *server) resume(c *gin.Context) {
	lang := c.Param("lang")
	doc, ok := s.document(c)
	if !ok {
		return
	}
	tag := etag(lang, doc.Revision)
	if c.GetHeader("If-None-Match") == tag {
		c.Status(http.StatusNotModified)
		return
	}

	pdf, err := s.render(c, lang, doc)
	if err != nil {
		log.Printf("Error generating resume %s: %v", lang, err)
		status := http.StatusInternalServerError
		var ve *resumepdf.ValidationError
		if errors.As(err, &ve) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	disposition := "attachment"
	if c.Query("inline") != "" {
		disposition = "inline"
	}
	name := resumepdf.Filename(doc.Content.PersonalInfo.Name, lang)
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, name))
	c.Header("ETag", tag)
	c.Header("X-Page-Count", fmt.Sprint(pdf.Pages()))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}

// render returns the PDF for doc, reusing the last rendering of the same
// revision.
// Cached results are shared between requests and never released.
func (s *server) render(c *gin.Context, lang string, doc *store.Document) (*resumepdf.Result, error) {
	s.mu.Lock()
	hit, ok := s.cache[lang]
	s.mu.Unlock()
	if ok && hit.revision == doc.Revision {
		return hit.res, nil
	}

	res, err := s.gen.Generate(c.Request.Context(), doc.Content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if cur, ok := s.cache[lang]; !ok || cur.revision <= doc.Revision {
		s.cache[lang] = cached{revision: doc.Revision, res: res}
	}
	s.mu.Unlock()
	return res, nil
}

func (s *server) html(c *gin.Context) {
	doc, ok := s.document(c)
	if !ok {
		return
	}
	l, err := s.gen.Layout(doc.Content)
	if err != nil {
		log.Printf("Error laying out resume %s: %v", c.Param("lang"), err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := resumepdf.WriteHTML(&buf, l, s.gen.Metadata(doc.Content)); err != nil {
		log.Printf("Error writing HTML %s: %v", c.Param("lang"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render HTML"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *server) putContent(c *gin.Context) {
	lang := c.Param("lang")
	content, err := resumepdf.LoadContent(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content.Language = lang
	if err := s.layable(content); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Put(c.Request.Context(), content); err != nil {
		log.Printf("Error storing content %s: %v", lang, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "stored", "language": lang})
}

// layable rejects documents that cannot be laid out, so the store never
// holds content that fails to render.
func (s *server) layable(c *resumepdf.Content) error {
	_, err := s.gen.Layout(c)
	return err
}

type fieldEdit struct {
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

func (s *server) patchContent(c *gin.Context) {
	lang := c.Param("lang")
	var edit fieldEdit
	if err := c.ShouldBindJSON(&edit); err != nil || edit.Path == "" || len(edit.Value) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be {\"path\": ..., \"value\": ...}"})
		return
	}
	err := s.store.SetField(c.Request.Context(), lang, edit.Path, edit.Value, s.layable)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No content for language " + lang})
	case errors.Is(err, store.ErrInvalidPath):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "updated", "path": edit.Path})
	}
}

func (s *server) deleteContent(c *gin.Context) {
	lang := c.Param("lang")
	err := s.store.Delete(c.Request.Context(), lang)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No content for language " + lang})
		return
	}
	if err != nil {
		log.Printf("Error deleting content %s: %v", lang, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}
	s.mu.Lock()
	delete(s.cache, lang)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func etag(lang string, revision int64) string {
	return fmt.Sprintf("%q", fmt.Sprintf("%s-%d", lang, revision))
}
