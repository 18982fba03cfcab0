// Package content loads the static portfolio data compiled into the binary.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultYAML []byte

//go:embed about.md
var defaultAbout []byte

// Skill is one entry of the skills grid.
type Skill struct {
	Name  string `yaml:"name" validate:"required"`
	Level int    `yaml:"level" validate:"gte=0,lte=100"`
}

// Project is one entry of the project gallery.
type Project struct {
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description" validate:"required"`
	Image       string   `yaml:"image"`
	Tags        []string `yaml:"tags" validate:"dive,required"`
}

// Profile is the biography shown in the hero, about and contact sections.
type Profile struct {
	Name         string `yaml:"name" validate:"required"`
	Role         string `yaml:"role" validate:"required"`
	Tagline      string `yaml:"tagline"`
	Headline     string `yaml:"headline"`
	Badge        string `yaml:"badge"`
	Email        string `yaml:"email" validate:"omitempty,email"`
	Location     string `yaml:"location"`
	Availability string `yaml:"availability"`
	GitHub       string `yaml:"github"`
	Copyright    string `yaml:"copyright"`
}

// Site is everything the page renders.
type Site struct {
	Profile  Profile   `yaml:"profile" validate:"required"`
	Skills   []Skill   `yaml:"skills" validate:"dive"`
	Projects []Project `yaml:"projects" validate:"dive"`

	// About is the rendered biography.
	About template.HTML `yaml:"-"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var markdown = goldmark.New(goldmark.WithExtensions(extension.Typographer))

// Default parses the content compiled into the binary.
func Default() (*Site, error) {
	return Parse(defaultYAML, defaultAbout)
}

// Parse decodes and validates site data and renders the markdown biography.
func Parse(data, about []byte) (*Site, error) {
	var site Site
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	if err := validate.Struct(&site); err != nil {
		return nil, convertValidationError(err)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(about, &buf); err != nil {
		return nil, fmt.Errorf("render about: %w", err)
	}
	site.About = template.HTML(buf.String())

	return &site, nil
}

// convertValidationError reports the first failing field by its lowercase path.
func convertValidationError(err error) error {
	ves, ok := err.(validator.ValidationErrors)
	if !ok || len(ves) == 0 {
		return fmt.Errorf("validate content: %w", err)
	}
	fe := ves[0]
	field := strings.ToLower(strings.TrimPrefix(fe.StructNamespace(), "Site."))
	return fmt.Errorf("validate content: %s failed '%s': %w", field, fe.Tag(), err)
}
