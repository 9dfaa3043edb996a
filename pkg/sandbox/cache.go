package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Source resolves a program identity to its raw source text.
type Source interface {
	Load(identity string) (string, error)
}

// DirSource loads programs from <Root>/<identity>.js.
type DirSource struct {
	Root string
}

func (s DirSource) Load(identity string) (string, error) {
	// Identities are cache keys, not paths; refuse anything that would
	// escape the program root.
	if identity == "" || identity != filepath.Base(identity) || strings.Contains(identity, "..") {
		return "", fmt.Errorf("invalid program identity %q", identity)
	}
	data, err := os.ReadFile(filepath.Join(s.Root, identity+".js"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MapSource serves programs from memory, keyed by identity.
type MapSource map[string]string

func (s MapSource) Load(identity string) (string, error) {
	src, ok := s[identity]
	if !ok {
		return "", fmt.Errorf("no program named %q", identity)
	}
	return src, nil
}

// Cache loads and instruments each distinct program identity exactly once
// for the lifetime of a match and shares the immutable result across every
// instance created from it. Safe for concurrent use; concurrent callers for
// the same identity share one load, with the first caller doing the work.
type Cache struct {
	source Source
	gates  Gates

	mu   sync.Mutex
	defs map[string]*cacheEntry
}

type cacheEntry struct {
	ready chan struct{}
	def   *Definition
	err   error
}

// NewCache creates a cache over the given program source. The gates are
// frozen into every definition the cache produces.
func NewCache(source Source, gates Gates) *Cache {
	return &Cache{
		source: source,
		gates:  gates,
		defs:   make(map[string]*cacheEntry),
	}
}

// GetOrLoad returns the instrumented definition for identity, loading and
// instrumenting it on first use. Failures are cached too: a program that
// cannot be loaded fails the same way for every caller.
func (c *Cache) GetOrLoad(identity string) (*Definition, error) {
	c.mu.Lock()
	e, ok := c.defs[identity]
	if ok {
		c.mu.Unlock()
		<-e.ready
		return e.def, e.err
	}
	e = &cacheEntry{ready: make(chan struct{})}
	c.defs[identity] = e
	c.mu.Unlock()

	defer close(e.ready)
	src, err := c.source.Load(identity)
	if err != nil {
		e.err = &LoadError{Identity: identity, Err: err}
		return nil, e.err
	}
	e.def, e.err = Instrument(identity, src, c.gates)
	return e.def, e.err
}
