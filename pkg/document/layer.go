package document

import (
	"slices"

	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
)

// Layer is an ordered stack of elements. It owns them: an element belongs
// to at most one layer and leaves it only through Remove.
type Layer struct {
	Name    string
	Visible bool

	elements []element.Element
}

// NewLayer returns an empty visible layer
func NewLayer(name string) *Layer {
	return &Layer{Name: name, Visible: true}
}

// Add appends e on top of the layer
func (l *Layer) Add(e element.Element) {
	l.elements = append(l.elements, e)
}

// Insert places e at index i, clamped to the valid range
func (l *Layer) Insert(e element.Element, i int) {
	i = max(0, min(i, len(l.elements)))
	l.elements = slices.Insert(l.elements, i, e)
}

// Remove takes e out of the layer and hands it back to the caller
func (l *Layer) Remove(e element.Element) (element.Element, bool) {
	i := l.IndexOf(e)
	if i < 0 {
		return nil, false
	}
	l.elements = slices.Delete(l.elements, i, i+1)
	return e, true
}

// IndexOf returns the position of e, or -1
func (l *Layer) IndexOf(e element.Element) int {
	return slices.Index(l.elements, e)
}

// Elements returns the elements bottom to top. The slice is a copy; the
// elements are still owned by the layer.
func (l *Layer) Elements() []element.Element {
	return slices.Clone(l.elements)
}

// Len returns the number of elements
func (l *Layer) Len() int {
	return len(l.elements)
}

// Clear drops all elements
func (l *Layer) Clear() {
	l.elements = nil
}
