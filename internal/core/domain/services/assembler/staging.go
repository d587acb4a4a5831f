// Package assembler renders placeholder templates into finished documents.
//
// Values are staged by placeholder name, either as text or as ready-built
// element fragments. Render resolves them against the parsed template tree
// and serializes once at the end, so escaping is never done by hand.
package assembler

import "github.com/beevik/etree"

// Staging collects the values a template is rendered with.
type Staging struct {
	scalars   map[string]string
	fragments map[string][]*etree.Element
}

// NewStaging returns an empty staging area.
func NewStaging() *Staging {
	return &Staging{
		scalars:   make(map[string]string),
		fragments: make(map[string][]*etree.Element),
	}
}

// Set stages a text value. Empty values are not staged, so their
// placeholder is treated as unresolved and cleaned up.
func (s *Staging) Set(name, value string) {
	if value == "" {
		return
	}
	delete(s.fragments, name)
	s.scalars[name] = value
}

// SetDefault stages value only when nothing is staged under name yet.
func (s *Staging) SetDefault(name, value string) {
	if s.Has(name) {
		return
	}
	s.Set(name, value)
}

// SetFragment stages elements to insert in place of the placeholder. An
// empty fragment still counts as resolved and renders as nothing.
func (s *Staging) SetFragment(name string, elements ...*etree.Element) {
	list := make([]*etree.Element, 0, len(elements))
	for _, el := range elements {
		if el != nil {
			list = append(list, el)
		}
	}
	delete(s.scalars, name)
	s.fragments[name] = list
}

// Has reports whether a text value or a fragment is staged under name.
func (s *Staging) Has(name string) bool {
	if _, ok := s.scalars[name]; ok {
		return true
	}
	_, ok := s.fragments[name]
	return ok
}

// Value returns a staged text value.
func (s *Staging) Value(name string) (string, bool) {
	v, ok := s.scalars[name]
	return v, ok
}

// Fragment returns a staged fragment.
func (s *Staging) Fragment(name string) ([]*etree.Element, bool) {
	f, ok := s.fragments[name]
	return f, ok
}

// Names lists every staged placeholder.
func (s *Staging) Names() []string {
	names := make([]string, 0, len(s.scalars)+len(s.fragments))
	for name := range s.scalars {
		names = append(names, name)
	}
	for name := range s.fragments {
		names = append(names, name)
	}
	return names
}
