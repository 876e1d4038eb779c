package content

import (
	"slices"

	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
)

// GraphicsState is the part of the PDF graphics state the writer tracks.
// Operators that would set a value already in effect are skipped.
type GraphicsState struct {
	CTM geom.Matrix // Current Transformation Matrix

	// Text state
	FontName string
	FontSize float64

	// Line state
	LineWidth   float64
	LineCap     int
	LineJoin    int
	DashPattern []float64
	DashPhase   float64

	// Color state
	StrokeColor [3]float64
	FillColor   [3]float64
	ExtGState   string
}

// NewGraphicsState creates a new graphics state with the PDF defaults
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM:       geom.Identity(),
		LineWidth: 1,
	}
}

// Clone creates a copy of the graphics state
func (gs *GraphicsState) Clone() *GraphicsState {
	newState := *gs
	newState.DashPattern = slices.Clone(gs.DashPattern)
	return &newState
}

// StateStack manages graphics state stack for save/restore operations
type StateStack struct {
	states []*GraphicsState
}

// NewStateStack creates a new state stack
func NewStateStack() *StateStack {
	return &StateStack{
		states: []*GraphicsState{NewGraphicsState()},
	}
}

// Current returns the current graphics state
func (s *StateStack) Current() *GraphicsState {
	return s.states[len(s.states)-1]
}

// Depth returns the number of unmatched saves
func (s *StateStack) Depth() int {
	return len(s.states) - 1
}

// Save saves the current graphics state
func (s *StateStack) Save() {
	s.states = append(s.states, s.Current().Clone())
}

// Restore restores the previous graphics state. It reports false when
// there is nothing to restore.
func (s *StateStack) Restore() bool {
	if len(s.states) > 1 {
		s.states = s.states[:len(s.states)-1]
		return true
	}
	return false
}
