// Package portfolio loads the read-only display data for the site.
package portfolio

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Sections lists the names accepted by Content.Section.
var Sections = []string{"about", "experience", "projects", "education", "certifications", "skills"}

// ErrUnknownSection is returned by Section for a name not in Sections.
var ErrUnknownSection = errors.New("unknown portfolio section")

type Experience struct {
	ID         int      `yaml:"id" json:"id"`
	Title      string   `yaml:"title" json:"title"`
	Company    string   `yaml:"company" json:"company"`
	Start      string   `yaml:"start" json:"start"`
	End        string   `yaml:"end" json:"end"`
	Logo       string   `yaml:"logo" json:"logo,omitempty"`
	Highlights []string `yaml:"highlights" json:"highlights"`
}

type Project struct {
	ID           int      `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	Image        string   `yaml:"image" json:"image,omitempty"`
}

type Education struct {
	ID          int      `yaml:"id" json:"id"`
	Degree      string   `yaml:"degree" json:"degree"`
	Institution string   `yaml:"institution" json:"institution"`
	Start       string   `yaml:"start" json:"start"`
	End         string   `yaml:"end" json:"end"`
	Logo        string   `yaml:"logo" json:"logo,omitempty"`
	Highlights  []string `yaml:"highlights" json:"highlights"`
}

type Certification struct {
	ID           int    `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Issuer       string `yaml:"issuer" json:"issuer,omitempty"`
	Date         string `yaml:"date" json:"date,omitempty"`
	Verification string `yaml:"verification" json:"verification,omitempty"`
}

type Skills struct {
	Programming []string `yaml:"programming" json:"programming"`
	Tools       []string `yaml:"tools" json:"tools"`
}

// Content is everything rendered on the page apart from the contact form.
type Content struct {
	Name           string          `yaml:"name" json:"name"`
	Headline       string          `yaml:"headline" json:"headline"`
	About          string          `yaml:"about" json:"about"`
	Experience     []Experience    `yaml:"experience" json:"experience"`
	Projects       []Project       `yaml:"projects" json:"projects"`
	Education      []Education     `yaml:"education" json:"education"`
	Certifications []Certification `yaml:"certifications" json:"certifications"`
	Skills         Skills          `yaml:"skills" json:"skills"`
}

// Default returns the content compiled into the binary.
func Default() (*Content, error) {
	return Parse(defaultContent)
}

// Load reads content from a YAML file, or the embedded default when path
// is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio content: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML content.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse portfolio content: %w", err)
	}
	if c.Name == "" {
		return nil, errors.New("parse portfolio content: name is required")
	}
	return &c, nil
}

// Section returns one named part of the content for JSON rendering.
func (c *Content) Section(name string) (any, error) {
	switch name {
	case "about":
		return map[string]string{"name": c.Name, "headline": c.Headline, "about": c.About}, nil
	case "experience":
		return c.Experience, nil
	case "projects":
		return c.Projects, nil
	case "education":
		return c.Education, nil
	case "certifications":
		return c.Certifications, nil
	case "skills":
		return c.Skills, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
}
