package reveal

// Tracker holds the reveal state of every block on one page view.
// It is not safe for concurrent use; the owning view serializes access.
type Tracker struct {
	states   map[string]State
	failOpen bool
}

// NewTracker returns a tracker with every known block unseen.
func NewTracker(blocks ...Block) *Tracker {
	t := &Tracker{states: make(map[string]State, len(blocks))}
	for _, b := range blocks {
		t.states[b.ID] = Unseen
	}
	return t
}

// Known reports whether id was registered with the tracker.
func (t *Tracker) Known(id string) bool {
	_, ok := t.states[id]
	return ok
}

// State reports a block's reveal state. Once the tracker has failed open every
// block reads as revealed.
func (t *Tracker) State(id string) State {
	if t.failOpen {
		return Revealed
	}
	return t.states[id]
}

// Observe records that a block intersected the viewport. It reports true only for
// the call that moved the block from Unseen to Revealed.
func (t *Tracker) Observe(id string) bool {
	if !t.Known(id) || t.states[id] == Revealed {
		return false
	}
	t.states[id] = Revealed
	return true
}

// Mount reveals a block immediately when it is already in view at first render.
func (t *Tracker) Mount(id string, inViewport bool) bool {
	if !inViewport {
		return false
	}
	return t.Observe(id)
}

// FailOpen marks every block revealed because the client cannot observe
// intersections. Content stays visible without animation.
func (t *Tracker) FailOpen() {
	t.failOpen = true
	for id := range t.states {
		t.states[id] = Revealed
	}
}

// Revealed counts blocks that have been revealed.
func (t *Tracker) Revealed() int {
	n := 0
	for _, s := range t.states {
		if s == Revealed {
			n++
		}
	}
	return n
}
