// Package gallery turns static skill and project records into revealable cards.
package gallery

import (
	"time"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/reveal"
)

var (
	skillCard = reveal.Transition{
		Hidden:   reveal.SlideY(20),
		Visible:  reveal.Shown,
		Duration: 400 * time.Millisecond,
	}
	projectCard = reveal.Transition{
		Hidden:   reveal.SlideY(20),
		Visible:  reveal.Shown,
		Duration: 500 * time.Millisecond,
	}
)

const (
	barDuration = time.Second
	barDelay    = 500 * time.Millisecond
)

// SkillCard is one rendered skill with its card and bar entrances.
type SkillCard struct {
	content.Skill
	Block reveal.Block
	Bar   reveal.Block
}

// ProjectCard is one rendered project with its card entrance.
type ProjectCard struct {
	content.Project
	Block reveal.Block
}

// Skills builds one card per skill in array order, staggered by index.
// The bar transition is independent of the card's stagger.
func Skills(skills []content.Skill) []SkillCard {
	blocks := reveal.Sequence("skill", len(skills), skillCard, reveal.DefaultStagger)
	cards := make([]SkillCard, len(skills))
	for i, s := range skills {
		cards[i] = SkillCard{
			Skill: s,
			Block: blocks[i],
			Bar:   reveal.NewBlock(blocks[i].ID+"-bar", reveal.Grow(s.Level, barDuration, barDelay)),
		}
	}
	return cards
}

// Projects builds one card per project in array order, staggered by index.
func Projects(projects []content.Project) []ProjectCard {
	blocks := reveal.Sequence("project", len(projects), projectCard, reveal.DefaultStagger)
	cards := make([]ProjectCard, len(projects))
	for i, p := range projects {
		cards[i] = ProjectCard{Project: p, Block: blocks[i]}
	}
	return cards
}

// Blocks returns every reveal block of the given cards.
func Blocks(skills []SkillCard, projects []ProjectCard) []reveal.Block {
	out := make([]reveal.Block, 0, 2*len(skills)+len(projects))
	for _, c := range skills {
		out = append(out, c.Block, c.Bar)
	}
	for _, c := range projects {
		out = append(out, c.Block)
	}
	return out
}
