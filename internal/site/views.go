package site

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Zachkp/portfolio/internal/reveal"
	"github.com/Zachkp/portfolio/internal/theme"
)

// ErrViewNotFound is returned for unknown or expired view IDs.
var ErrViewNotFound = errors.New("view not found")

// View is the state of one rendered page. A reload mints a new View, so the theme
// always starts light.
type View struct {
	ID string

	mu      sync.Mutex
	theme   *theme.Controller
	reveals *reveal.Tracker
}

// ToggleTheme flips the view's theme and returns the new state.
func (v *View) ToggleTheme() theme.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.theme.Toggle()
}

// Theme reports the view's current theme.
func (v *View) Theme() theme.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.theme.State()
}

// Reveal marks a block revealed. known is false for blocks not on the page.
func (v *View) Reveal(blockID string) (fired, known bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.reveals.Known(blockID) {
		return false, false
	}
	return v.reveals.Observe(blockID), true
}

// RevealState reports a block's state.
func (v *View) RevealState(blockID string) reveal.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reveals.State(blockID)
}

// FailOpen treats every block as revealed.
func (v *View) FailOpen() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reveals.FailOpen()
}

// DefaultMaxViews caps the registry when no limit is configured.
const DefaultMaxViews = 10000

// Views is the registry of live page views. It holds at most size views; the least
// recently used view is evicted first and idle views expire after ttl.
type Views struct {
	cache *expirable.LRU[string, *View]
}

func NewViews(size int, ttl time.Duration) *Views {
	if size <= 0 {
		size = DefaultMaxViews
	}
	return &Views{cache: expirable.NewLRU[string, *View](size, nil, ttl)}
}

// Create registers a new view tracking the given blocks. Blocks marked Mount are
// revealed immediately.
func (vs *Views) Create(blocks []reveal.Block) *View {
	tracker := reveal.NewTracker(blocks...)
	for _, b := range blocks {
		tracker.Mount(b.ID, b.Mount)
	}

	v := &View{
		ID:      uuid.NewString(),
		theme:   theme.New(),
		reveals: tracker,
	}
	vs.cache.Add(v.ID, v)
	return v
}

// Get returns a live view and refreshes its expiry.
func (vs *Views) Get(id string) (*View, error) {
	v, ok := vs.cache.Get(id)
	if !ok {
		return nil, ErrViewNotFound
	}
	vs.cache.Add(id, v)
	return v, nil
}

// Len reports the number of registered views.
func (vs *Views) Len() int {
	return vs.cache.Len()
}
