// Package rulestore serves templates, parameter definitions, validation
// rules and examples from a file system. The default content is embedded in
// the binary; a directory can replace it at startup.
package rulestore

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/ports"
	"transportorder/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

//go:embed data
var embedded embed.FS

var _ ports.RuleStore = (*Store)(nil)

// Embedded returns the built-in rule data rooted at its data directory.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // the directory is compiled in
	}
	return sub
}

// Store reads lazily and caches every file it has read until Reset. It is
// safe for concurrent use.
type Store struct {
	fsys fs.FS

	mu sync.RWMutex
	// generation counts resets. A load that started before the latest reset
	// is returned to its caller but never cached.
	generation uint64
	templates  map[kernel.DocumentType]string
	parameters map[ruleset.ParameterKind]ruleset.ParameterDefinitions
	validation map[ruleset.ValidationKind]ruleset.ValidationRules
	examples   map[kernel.DocumentType]string
	inputs     map[kernel.DocumentType][]byte
}

// New checks that a template exists for every document type and returns the
// store. A missing template fails startup rather than the first request.
func New(fsys fs.FS) (*Store, error) {
	s := &Store{fsys: fsys}
	s.resetLocked()

	for _, documentType := range kernel.AllDocumentTypes() {
		name := templatePath(documentType)
		if _, err := fs.Stat(fsys, name); err != nil {
			return nil, errs.NewObjectNotFoundErrorWithCause("template", name, err)
		}
	}

	return s, nil
}

// Template returns the XML skeleton of documentType with its placeholders
// still in place.
func (s *Store) Template(documentType kernel.DocumentType) (string, error) {
	if err := documentType.Validate(); err != nil {
		return "", err
	}

	s.mu.RLock()
	cached, ok := s.templates[documentType]
	generation := s.generation
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	data, err := s.read("template", templatePath(documentType))
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.generation == generation {
		s.templates[documentType] = string(data)
	}
	s.mu.Unlock()
	return string(data), nil
}

// ParameterDefinitions returns the parameter table of one kind (fixed,
// transport, order or item).
func (s *Store) ParameterDefinitions(kind ruleset.ParameterKind) (ruleset.ParameterDefinitions, error) {
	s.mu.RLock()
	cached, ok := s.parameters[kind]
	generation := s.generation
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var defs ruleset.ParameterDefinitions
	if err := s.decode("parameters", path.Join("parameters", string(kind)+".yaml"), &defs); err != nil {
		return ruleset.ParameterDefinitions{}, err
	}

	s.mu.Lock()
	if s.generation == generation {
		s.parameters[kind] = defs
	}
	s.mu.Unlock()
	return defs, nil
}

// ValidationRules returns the field or business rule set.
func (s *Store) ValidationRules(kind ruleset.ValidationKind) (ruleset.ValidationRules, error) {
	s.mu.RLock()
	cached, ok := s.validation[kind]
	generation := s.generation
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var rules ruleset.ValidationRules
	if err := s.decode("validation rules", path.Join("validation", string(kind)+".yaml"), &rules); err != nil {
		return ruleset.ValidationRules{}, err
	}

	s.mu.Lock()
	if s.generation == generation {
		s.validation[kind] = rules
	}
	s.mu.Unlock()
	return rules, nil
}

// Example returns a finished sample document of documentType.
func (s *Store) Example(documentType kernel.DocumentType) (string, error) {
	if err := documentType.Validate(); err != nil {
		return "", err
	}

	s.mu.RLock()
	cached, ok := s.examples[documentType]
	generation := s.generation
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	data, err := s.read("example", path.Join("examples", documentType.String()+"_example.xml"))
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.generation == generation {
		s.examples[documentType] = string(data)
	}
	s.mu.Unlock()
	return string(data), nil
}

// ExampleInput decodes a fresh copy on every call so callers may modify the
// result.
func (s *Store) ExampleInput(documentType kernel.DocumentType) (transportorder.Input, error) {
	if err := documentType.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.inputs[documentType]
	generation := s.generation
	s.mu.RUnlock()

	if !ok {
		var err error
		data, err = s.read("example input", path.Join("examples", documentType.String()+"_input.yaml"))
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.generation == generation {
			s.inputs[documentType] = data
		}
		s.mu.Unlock()
	}

	input := transportorder.Input{}
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("decode example input for %s: %w", documentType, err)
	}
	return input, nil
}

// DocumentTypes lists the known types that have a template, in declaration
// order.
func (s *Store) DocumentTypes() []kernel.DocumentType {
	entries, err := fs.ReadDir(s.fsys, "templates")
	if err != nil {
		return nil
	}

	available := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".xml"); ok && !e.IsDir() {
			available[name] = struct{}{}
		}
	}

	var types []kernel.DocumentType
	for _, t := range kernel.AllDocumentTypes() {
		if _, ok := available[t.String()]; ok {
			types = append(types, t)
		}
	}
	return types
}

// Reset drops every cached file. It is safe to call while lookups are in
// flight: a lookup that started reading before Reset still returns what it
// read, but its result is not cached, so every lookup that starts after
// Reset returns sees the file system as it is now.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.resetLocked()
}
func (s *Store) resetLocked() {
	s.templates = make(map[kernel.DocumentType]string)
	s.parameters = make(map[ruleset.ParameterKind]ruleset.ParameterDefinitions)
	s.validation = make(map[ruleset.ValidationKind]ruleset.ValidationRules)
	s.examples = make(map[kernel.DocumentType]string)
	s.inputs = make(map[kernel.DocumentType][]byte)
}

func (s *Store) read(resource, name string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.NewObjectNotFoundErrorWithCause(resource, name, err)
		}
		return nil, fmt.Errorf("read %s %s: %w", resource, name, err)
	}
	return data, nil
}

func (s *Store) decode(resource, name string, target any) error {
	data, err := s.read(resource, name)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s %s: %w", resource, name, err)
	}
	return nil
}

func templatePath(documentType kernel.DocumentType) string {
	return path.Join("templates", documentType.String()+".xml")
}
