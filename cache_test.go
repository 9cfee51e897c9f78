package mdshow

import (
	"testing"
)

func TestRenderCache(t *testing.T) {
	c := &renderCache{}

	const fragment = "# A\ntext\n"
	if _, ok := c.load(fragment); ok {
		t.Fatal("empty cache returned a hit")
	}

	c.store(fragment, "<p><h1>A</h1></p>")
	got, ok := c.load(fragment)
	if !ok {
		t.Fatal("cache miss after store")
	}
	if got != "<p><h1>A</h1></p>" {
		t.Errorf("load() = %q", got)
	}
	if _, ok := c.load("# B"); ok {
		t.Error("unexpected hit for another fragment")
	}
}

func TestRenderCacheRetain(t *testing.T) {
	c := &renderCache{}
	c.store("# A", "a")
	c.store("# B", "b")
	c.store("# C", "c")

	c.retain([]string{"# B", "# D"})

	for _, tt := range []struct {
		fragment string
		want     bool
	}{
		{"# A", false},
		{"# B", true},
		{"# C", false},
		{"# D", false},
	} {
		if _, ok := c.load(tt.fragment); ok != tt.want {
			t.Errorf("load(%q) hit = %v, want %v", tt.fragment, ok, tt.want)
		}
	}
}
