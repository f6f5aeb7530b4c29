// Package navigation provides a screen stack that can be handed to a Manager
// as the presentation context. Coordinators push screens onto it; the
// routing core only passes it through.
package navigation

import "sync"

// Screen is anything a coordinator can present.
type Screen interface {
	Title() string
}

// Stack manages presented screens for back navigation.
// It is safe for concurrent use.
type Stack struct {
	mu      sync.Mutex
	screens []Screen
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		screens: make([]Screen, 0),
	}
}

// From returns the Stack behind a presentation context, if it is one.
func From(presenter any) (*Stack, bool) {
	s, ok := presenter.(*Stack)
	return s, ok && s != nil
}

// Push presents a screen. Nil screens are ignored.
func (s *Stack) Push(screen Screen) {
	if screen == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screens = append(s.screens, screen)
}

// Pop removes and returns the top screen.
// Returns nil if the stack is empty.
func (s *Stack) Pop() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.screens) == 0 {
		return nil
	}
	top := s.screens[len(s.screens)-1]
	s.screens = s.screens[:len(s.screens)-1]
	return top
}

// Peek returns the top screen without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// IsEmpty returns true if no screen is presented.
func (s *Stack) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of presented screens.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.screens)
}

// Titles returns the screen titles from bottom to top.
func (s *Stack) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	titles := make([]string, len(s.screens))
	for i, screen := range s.screens {
		titles[i] = screen.Title()
	}
	return titles
}

// Clear removes all screens.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screens = s.screens[:0]
}

// Titled is a Screen with a fixed title.
type Titled string

func (t Titled) Title() string { return string(t) }
