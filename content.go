package resumepdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Content is the localized résumé document. Every language uses the same
// shape; only the string values differ. All strings are already translated
// by the caller.
type Content struct {
	Language     string        `json:"language"`
	PersonalInfo PersonalInfo  `json:"personalInfo"`
	Summary      []string      `json:"summary"`
	Skills       Skills        `json:"skills"`
	Experience   []Experience  `json:"experience"`
	Education    []Education   `json:"education"`
	Certificates []Certificate `json:"certificates,omitempty"`
	Projects     []Project     `json:"projects"`
	Labels       Labels        `json:"labels"`
}

// PersonalInfo is the header and contact block.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Skill is a named skill with a level between 0 and 100.
type Skill struct {
	Name  string  `json:"name"`
	Level float64 `json:"level"`
}

// Skills groups the three skill lists and the localized tier labels.
type Skills struct {
	Programming []Skill         `json:"programming"`
	Tools       []Skill         `json:"tools"`
	Languages   []Skill         `json:"languages"`
	Levels      map[Tier]string `json:"levels"`
}

// Experience is one position held.
type Experience struct {
	Position         string   `json:"position"`
	Company          string   `json:"company"`
	Period           string   `json:"period,omitempty"`
	Location         string   `json:"location,omitempty"`
	Description      string   `json:"description,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// Education is one degree.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Period      string `json:"period,omitempty"`
}

// Certificate is one certification. Link is optional.
type Certificate struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Project is one showcased project. Only the first few are rendered.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	LiveLink    string `json:"liveLink,omitempty"`
	SourceLink  string `json:"sourceLink,omitempty"`
}

// link returns the URL shown for the project, preferring the live demo,
// and whether it points at source code.
func (p Project) link() (url string, source bool) {
	if p.LiveLink != "" {
		return p.LiveLink, false
	}
	return p.SourceLink, p.SourceLink != ""
}

// Labels holds the localized section titles and fixed captions.
type Labels struct {
	Contact           string `json:"contact"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Location          string `json:"location"`
	Website           string `json:"website"`
	ProgrammingSkills string `json:"programmingSkills"`
	Tools             string `json:"tools"`
	Languages         string `json:"languages"`
	Summary           string `json:"summary"`
	Experience        string `json:"experience"`
	Education         string `json:"education"`
	Certificates      string `json:"certificates"`
	Projects          string `json:"projects"`
	ViewProject       string `json:"viewProject"`
	ViewSource        string `json:"viewSource,omitempty"`
	ViewCertificate   string `json:"viewCertificate,omitempty"`
	GitHub            string `json:"github"`
	GitHubText        string `json:"githubText,omitempty"`
}

// LoadContent decodes a Content document from JSON. Unknown fields are
// rejected so that a misspelt key does not silently drop a section.
func LoadContent(r io.Reader) (*Content, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("resumepdf: decoding content: %w", err)
	}
	return &c, nil
}

// LoadContentFile reads a Content document from a JSON file. When the
// document carries no language, the file name without extension is used.
func LoadContentFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resumepdf: %w", err)
	}
	c, err := LoadContent(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	if c.Language == "" {
		c.Language = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// LoadContentDir reads every *.json file in dir, keyed by language.
func LoadContentDir(dir string) (map[string]*Content, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("resumepdf: %w", err)
	}
	sort.Strings(paths)
	docs := make(map[string]*Content, len(paths))
	for _, p := range paths {
		c, err := LoadContentFile(p)
		if err != nil {
			return nil, err
		}
		docs[c.Language] = c
	}
	return docs, nil
}
