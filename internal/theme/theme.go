// Package theme holds the light/dark visual mode of a single page view.
package theme

// State is the visual mode of a page view.
type State int

const (
	Light State = iota
	Dark
)

func (s State) String() string {
	if s == Dark {
		return "dark"
	}
	return "light"
}

// Class is the document-root class the stylesheet keys its palette on.
// Light mode carries no class.
func (s State) Class() string {
	if s == Dark {
		return "dark"
	}
	return ""
}

// Controller owns one view's theme. It starts in Light and only changes on Toggle.
// A Controller is not safe for concurrent use; callers serialize access.
type Controller struct {
	state    State
	onChange []func(State)
}

// New returns a Controller in Light mode. Each hook is invoked on every change.
func New(hooks ...func(State)) *Controller {
	return &Controller{state: Light, onChange: hooks}
}

// State reports the current mode.
func (c *Controller) State() State {
	return c.state
}

// Class reports the root class for the current mode.
func (c *Controller) Class() string {
	return c.state.Class()
}

// OnChange registers a hook called with the new state after each toggle.
func (c *Controller) OnChange(hook func(State)) {
	c.onChange = append(c.onChange, hook)
}

// Toggle flips the mode and returns the new one.
func (c *Controller) Toggle() State {
	if c.state == Dark {
		c.state = Light
	} else {
		c.state = Dark
	}
	for _, hook := range c.onChange {
		hook(c.state)
	}
	return c.state
}
