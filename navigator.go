package mdshow

import (
	"log/slog"
	"sync"
)

// NavigationState is the position of the current slide.
// 0 <= Current < Total holds whenever Total > 0.
type NavigationState struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Goto returns the state moved to index i, wrapping around in both directions.
// With no slides the state is returned unchanged.
func (s NavigationState) Goto(i int) NavigationState {
	if s.Total <= 0 {
		return s
	}
	s.Current = ((i % s.Total) + s.Total) % s.Total
	return s
}

// Next returns the state moved one slide forward.
func (s NavigationState) Next() NavigationState {
	return s.Goto(s.Current + 1)
}

// Prev returns the state moved one slide backward.
func (s NavigationState) Prev() NavigationState {
	return s.Goto(s.Current - 1)
}

// Navigator owns the navigation state of a slide sequence and the active flag of every slide.
type Navigator struct {
	mu     sync.Mutex
	slides Slides
	state  NavigationState
	logger *slog.Logger
}

// NewNavigator returns a Navigator positioned on the first slide.
func NewNavigator(slides Slides, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for i, s := range slides {
		s.Active = i == 0
	}
	return &Navigator{
		slides: slides,
		state:  NavigationState{Total: len(slides)},
		logger: logger,
	}
}

// Goto moves to slide i. Out-of-range indices wrap around.
func (n *Navigator) Goto(i int) NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.move(n.state.Goto(i))
}

// Next moves to the following slide, wrapping from the last to the first.
func (n *Navigator) Next() NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.move(n.state.Next())
}

// Prev moves to the preceding slide, wrapping from the first to the last.
func (n *Navigator) Prev() NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.move(n.state.Prev())
}

// State returns the current navigation state.
func (n *Navigator) State() NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Active returns a copy of the active slide, or nil when there are no slides.
func (n *Navigator) Active() *Slide {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state.Total == 0 {
		return nil
	}
	s := *n.slides[n.state.Current]
	return &s
}

// Snapshot returns a copy of the slides together with the state they reflect.
func (n *Navigator) Snapshot() (Slides, NavigationState) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.slides.clone(), n.state
}

// move must be called with mu held.
func (n *Navigator) move(to NavigationState) NavigationState {
	if n.state.Total == 0 {
		return n.state
	}
	from := n.state.Current
	if from != to.Current {
		n.slides[from].Active = false
		n.slides[to.Current].Active = true
	}
	n.state = to
	n.logger.Debug("navigated", slog.Int("from_index", from), slog.Int("to_index", to.Current))
	return n.state
}
