package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"html/template"
	"time"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/gallery"
	"github.com/Zachkp/portfolio/internal/motion"
	"github.com/Zachkp/portfolio/internal/reveal"
)

// Anchors are the in-page navigation targets, in nav order.
var Anchors = []string{"about", "skills", "projects", "contact"}

func slide(hidden reveal.Visual, duration, delay time.Duration) reveal.Transition {
	return reveal.Transition{Hidden: hidden, Visible: reveal.Shown, Duration: duration, Delay: delay}
}

const ms = time.Millisecond

// sectionBlocks are the page's standalone reveal blocks. Header and hero blocks
// are in view at first render.
var sectionBlocks = []reveal.Block{
	reveal.NewBlock("header-brand", slide(reveal.SlideX(-20), 500*ms, 0)).OnMount(),
	reveal.NewBlock("header-nav", slide(reveal.SlideY(-10), 500*ms, 200*ms)).OnMount(),
	reveal.NewBlock("header-actions", slide(reveal.SlideX(20), 500*ms, 0)).OnMount(),
	reveal.NewBlock("hero", slide(reveal.SlideY(20), 800*ms, 0)).OnMount(),
	reveal.NewBlock("hero-cue", slide(reveal.SlideY(10), 500*ms, 1500*ms)).OnMount(),

	reveal.NewBlock("about-heading", slide(reveal.Fade(), 600*ms, 0)),
	reveal.NewBlock("about-image", slide(reveal.SlideX(-50), 600*ms, 0)),
	reveal.NewBlock("about-text", slide(reveal.SlideX(50), 600*ms, 200*ms)),
	reveal.NewBlock("skills-heading", slide(reveal.Fade(), 600*ms, 0)),
	reveal.NewBlock("projects-heading", slide(reveal.Fade(), 600*ms, 0)),
	reveal.NewBlock("contact-heading", slide(reveal.Fade(), 600*ms, 0)),
	reveal.NewBlock("contact-info", slide(reveal.SlideX(-50), 600*ms, 0)),
	reveal.NewBlock("contact-form", slide(reveal.SlideX(50), 600*ms, 200*ms)),
	reveal.NewBlock("footer-brand", slide(reveal.SlideY(20), 500*ms, 0)),
	reveal.NewBlock("footer-copy", slide(reveal.SlideY(20), 500*ms, 200*ms)),
}

// Parallax is the hero layer's scroll mapping, serialised for the browser.
type Parallax struct {
	Y       motion.Transform `json:"y"`
	Opacity motion.Transform `json:"opacity"`
}

// Page is the template model for one rendered view.
type Page struct {
	ViewID     string
	ThemeClass string
	Profile    content.Profile
	About      template.HTML
	Skills     []gallery.SkillCard
	Projects   []gallery.ProjectCard
	Anchors    []string
	Hero       motion.Frame
	Parallax   Parallax
	Year       int

	sections map[string]reveal.Block
}

// Section looks up a standalone reveal block. Unknown IDs fail template execution.
func (p Page) Section(id string) (reveal.Block, error) {
	b, ok := p.sections[id]
	if !ok {
		return reveal.Block{}, fmt.Errorf("unknown section block %q", id)
	}
	return b, nil
}

// Layout is the part of a page that does not depend on the view.
type Layout struct {
	site     *content.Site
	skills   []gallery.SkillCard
	projects []gallery.ProjectCard
	sections map[string]reveal.Block
	blocks   []reveal.Block
}

// NewLayout prepares the cards and reveal blocks for a site.
func NewLayout(site *content.Site) *Layout {
	l := &Layout{
		site:     site,
		skills:   gallery.Skills(site.Skills),
		projects: gallery.Projects(site.Projects),
		sections: make(map[string]reveal.Block, len(sectionBlocks)),
	}
	for _, b := range sectionBlocks {
		l.sections[b.ID] = b
	}
	l.blocks = append(append([]reveal.Block{}, sectionBlocks...), gallery.Blocks(l.skills, l.projects)...)
	return l
}

// Blocks lists every reveal block on the page.
func (l *Layout) Blocks() []reveal.Block {
	return l.blocks
}

// Page builds the template model for a view.
func (l *Layout) Page(v *View, now time.Time) Page {
	return Page{
		ViewID:     v.ID,
		ThemeClass: v.Theme().Class(),
		Profile:    l.site.Profile,
		About:      l.site.About,
		Skills:     l.skills,
		Projects:   l.projects,
		Anchors:    Anchors,
		Hero:       motion.Rest(),
		Parallax:   Parallax{Y: motion.ParallaxY, Opacity: motion.HeroFade},
		Year:       now.Year(),
		sections:   l.sections,
	}
}

var funcs = template.FuncMap{
	"reveal":  revealAttr,
	"css":     func(s string) template.CSS { return template.CSS(s) },
	"json":    jsonAttr,
	"heading": newHeading,
}

// Heading is the badge-and-title block that opens each section.
type Heading struct {
	Block reveal.Block
	Badge string
	Title string
}

func newHeading(b reveal.Block, badge, title string) Heading {
	return Heading{Block: b, Badge: badge, Title: title}
}

// revealAttr renders the data attribute the browser adapter animates from.
func revealAttr(b reveal.Block) (template.HTMLAttr, error) {
	if b.ID == "" {
		return "", errors.New("reveal block has no id")
	}
	plan, err := json.Marshal(b.Plan())
	if err != nil {
		return "", err
	}
	return template.HTMLAttr(`data-reveal="` + html.EscapeString(string(plan)) + `"`), nil
}

func jsonAttr(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
