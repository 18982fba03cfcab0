// Package reveal sequences one-shot entrance animations for page blocks.
//
// Each block starts Unseen and becomes Revealed the first time it intersects the
// viewport. The transition never reverts and repeated observations are no-ops.
package reveal

import (
	"fmt"
	"time"
)

// DefaultStagger is the delay added per list index.
const DefaultStagger = 100 * time.Millisecond

// State is a block's reveal state.
type State int

const (
	Unseen State = iota
	Revealed
)

func (s State) String() string {
	if s == Revealed {
		return "revealed"
	}
	return "unseen"
}

// Visual is one end of an entrance transition.
type Visual struct {
	Opacity float64 `json:"opacity"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	// Width is a percentage; negative means the property is not animated.
	Width float64 `json:"width"`
}

// Shown is the resting, fully visible state.
var Shown = Visual{Opacity: 1, Width: -1}

// Fade returns a hidden state that is transparent at its final position.
func Fade() Visual { return Visual{Opacity: 0, Width: -1} }

// SlideX returns a hidden state that is transparent and offset horizontally.
func SlideX(dx float64) Visual { return Visual{Opacity: 0, X: dx, Width: -1} }

// SlideY returns a hidden state that is transparent and offset vertically.
func SlideY(dy float64) Visual { return Visual{Opacity: 0, Y: dy, Width: -1} }

// Style renders the visual as inline CSS.
func (v Visual) Style() string {
	s := fmt.Sprintf("opacity: %g; transform: translate(%gpx, %gpx);", v.Opacity, v.X, v.Y)
	if v.Width >= 0 {
		s += fmt.Sprintf(" width: %g%%;", v.Width)
	}
	return s
}

// Transition describes how a block moves from Hidden to Visible.
type Transition struct {
	Hidden   Visual
	Visible  Visual
	Duration time.Duration
	Delay    time.Duration
}

// Grow animates an inner bar from empty to level percent.
func Grow(level int, duration, delay time.Duration) Transition {
	return Transition{
		Hidden:   Visual{Opacity: 1, Width: 0},
		Visible:  Visual{Opacity: 1, Width: float64(level)},
		Duration: duration,
		Delay:    delay,
	}
}

// Viewport configures when a block counts as visible.
type Viewport struct {
	// Once keeps a block revealed after it leaves the viewport.
	Once bool
	// Threshold is the visible fraction of the block that triggers a reveal.
	Threshold float64
}

// DefaultViewport reveals a block once any part of it is visible.
var DefaultViewport = Viewport{Once: true, Threshold: 0}

// Block is one revealable element of the page.
type Block struct {
	ID         string
	Transition Transition
	Viewport   Viewport
	// Index is the block's position in its list, or -1 when it is not a list member.
	Index   int
	Stagger time.Duration
	// Mount marks a block that is in view at first render and plays immediately.
	Mount bool
}

// NewBlock returns a standalone block with the default viewport.
func NewBlock(id string, tr Transition) Block {
	return Block{ID: id, Transition: tr, Viewport: DefaultViewport, Index: -1}
}

// InList returns a copy of b positioned at index in a staggered list.
func (b Block) InList(index int, stagger time.Duration) Block {
	b.Index = index
	b.Stagger = stagger
	return b
}

// OnMount returns a copy of b that reveals as soon as the page mounts.
func (b Block) OnMount() Block {
	b.Mount = true
	return b
}

// StartDelay is how long after the reveal fires the transition begins.
func (b Block) StartDelay() time.Duration {
	d := b.Transition.Delay
	if b.Index > 0 {
		d += time.Duration(b.Index) * b.Stagger
	}
	return d
}

// Plan is the client-facing description of a block's entrance.
type Plan struct {
	ID        string  `json:"id"`
	Hidden    Visual  `json:"hidden"`
	Visible   Visual  `json:"visible"`
	Duration  float64 `json:"duration"`
	Delay     float64 `json:"delay"`
	Threshold float64 `json:"threshold"`
	Once      bool    `json:"once"`
	Mount     bool    `json:"mount,omitempty"`
}

// Plan computes the entrance plan with durations in seconds.
func (b Block) Plan() Plan {
	return Plan{
		ID:        b.ID,
		Hidden:    b.Transition.Hidden,
		Visible:   b.Transition.Visible,
		Duration:  b.Transition.Duration.Seconds(),
		Delay:     b.StartDelay().Seconds(),
		Threshold: b.Viewport.Threshold,
		Once:      b.Viewport.Once,
		Mount:     b.Mount,
	}
}

// Sequence builds list members sharing one transition, indexed in order.
func Sequence(prefix string, n int, tr Transition, stagger time.Duration) []Block {
	blocks := make([]Block, n)
	for i := range blocks {
		blocks[i] = NewBlock(fmt.Sprintf("%s-%d", prefix, i), tr).InList(i, stagger)
	}
	return blocks
}
