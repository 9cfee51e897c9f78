package mdshow

import (
	"sync"
)

// renderCache holds rendered slide HTML keyed by the fragment source.
// A rebuilt presentation re-renders only the fragments that changed.
// After every build it holds only the fragments of that build.
type renderCache struct {
	m sync.Map
}

func (c *renderCache) load(fragment string) (string, bool) {
	if v, ok := c.m.Load(fragment); ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

func (c *renderCache) store(fragment, html string) {
	c.m.Store(fragment, html)
}

// retain drops every entry whose fragment is not in fragments.
func (c *renderCache) retain(fragments []string) {
	keep := make(map[string]struct{}, len(fragments))
	for _, f := range fragments {
		keep[f] = struct{}{}
	}
	c.m.Range(func(k, _ any) bool {
		if f, ok := k.(string); !ok || !isKept(keep, f) {
			c.m.Delete(k)
		}
		return true
	})
}

func isKept(keep map[string]struct{}, fragment string) bool {
	_, ok := keep[fragment]
	return ok
}
