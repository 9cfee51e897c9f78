package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/k1LoW/mdshow"
)

const deck = `---
title: Demo
---
# One
first

# Two
second

# Three
third
`

func build(t *testing.T, content string) *mdshow.Presentation {
	t.Helper()
	b, err := mdshow.NewBuilder()
	if err != nil {
		t.Fatal(err)
	}
	p, err := b.Build(context.Background(), &mdshow.Document{Name: "slides.md", Content: []byte(content)})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func newTestServer(t *testing.T, content string) (*Server, *httptest.Server) {
	t.Helper()
	s := New()
	s.Update(build(t, content))
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return s, ts
}

func postJSON(t *testing.T, url string) stateResponse {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Accept", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("POST %s: status %d", url, res.StatusCode)
	}
	var st stateResponse
	if err := json.NewDecoder(res.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	return st
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return res.StatusCode, string(b)
}

func TestNavigation(t *testing.T) {
	_, ts := newTestServer(t, deck)

	steps := []struct {
		path string
		want int
	}{
		{"/next", 1},
		{"/next", 2},
		{"/next", 0},
		{"/prev", 2},
		{"/goto/1", 1},
		{"/goto/-1", 2},
		{"/goto/7", 1},
	}
	for _, step := range steps {
		st := postJSON(t, ts.URL+step.path)
		if st.Current != step.want {
			t.Errorf("POST %s: current = %d, want %d", step.path, st.Current, step.want)
		}
		if st.Total != 3 {
			t.Errorf("POST %s: total = %d, want 3", step.path, st.Total)
		}
	}
}

func TestNavigationRedirect(t *testing.T) {
	_, ts := newTestServer(t, deck)
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	res, err := client.Post(ts.URL+"/next", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", res.StatusCode, http.StatusSeeOther)
	}
	if got := res.Header.Get("Location"); got != "/" {
		t.Errorf("Location = %q, want /", got)
	}
}

func TestGotoInvalidIndex(t *testing.T) {
	_, ts := newTestServer(t, deck)
	res, err := http.Post(ts.URL+"/goto/abc", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

func TestPageReflectsActiveSlide(t *testing.T) {
	_, ts := newTestServer(t, deck)
	postJSON(t, ts.URL+"/next")

	status, body := get(t, ts.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{
		"<title>Demo</title>",
		`<div class="slide" id="slide-0">`,
		`<div class="slide active" id="slide-1">`,
		`<div class="slide" id="slide-2">`,
		`id="prevSlide"`,
		`id="nextSlide"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
	if got := strings.Count(body, "slide active"); got != 1 {
		t.Errorf("active slides = %d, want 1", got)
	}
}

func TestSlide(t *testing.T) {
	_, ts := newTestServer(t, deck)
	tests := []struct {
		path string
		want string
	}{
		{"/slides/0", "<p><h1>One</h1></p>"},
		{"/slides/2", "<p><h1>Three</h1></p>"},
		{"/slides/3", "<p><h1>One</h1></p>"},
		{"/slides/-1", "<p><h1>Three</h1></p>"},
	}
	for _, tt := range tests {
		status, body := get(t, ts.URL+tt.path)
		if status != http.StatusOK {
			t.Errorf("GET %s: status = %d", tt.path, status)
			continue
		}
		if !strings.HasPrefix(body, tt.want) {
			t.Errorf("GET %s = %q, want prefix %q", tt.path, body, tt.want)
		}
	}
}

func TestNotice(t *testing.T) {
	s := New()
	s.SetNotice("No <strong>slides.md</strong> or <strong>README.md</strong> file found.")
	ts := httptest.NewServer(s)
	defer ts.Close()

	_, body := get(t, ts.URL+"/")
	if !strings.Contains(body, "No <strong>slides.md</strong> or <strong>README.md</strong> file found.") {
		t.Errorf("page does not contain the notice: %s", body)
	}
	for _, unwanted := range []string{`class="slide`, "slideshow", "<button"} {
		if strings.Contains(body, unwanted) {
			t.Errorf("notice page contains %q", unwanted)
		}
	}

	st := postJSON(t, ts.URL+"/next")
	if diff := cmp.Diff(stateResponse{}, st); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if status, _ := get(t, ts.URL+"/slides/0"); status != http.StatusNotFound {
		t.Errorf("GET /slides/0: status = %d, want %d", status, http.StatusNotFound)
	}
}

func TestUpdateKeepsPosition(t *testing.T) {
	s, ts := newTestServer(t, deck)
	postJSON(t, ts.URL+"/goto/2")
	before := postJSON(t, ts.URL+"/goto/2")

	s.Update(build(t, deck+"\n# Four\nfourth\n"))
	_, body := get(t, ts.URL+"/state")
	var after stateResponse
	if err := json.Unmarshal([]byte(body), &after); err != nil {
		t.Fatal(err)
	}
	if after.Current != 2 || after.Total != 4 {
		t.Errorf("state = %+v, want current 2 of 4", after.NavigationState)
	}
	if after.Revision == before.Revision {
		t.Error("revision should change on update")
	}

	s.Update(build(t, "# Only\n"))
	_, body = get(t, ts.URL+"/state")
	if err := json.Unmarshal([]byte(body), &after); err != nil {
		t.Fatal(err)
	}
	if after.Current != 0 || after.Total != 1 {
		t.Errorf("state = %+v, want current 0 of 1", after.NavigationState)
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, deck)
	status, body := get(t, ts.URL+"/health")
	if status != http.StatusOK || !strings.Contains(body, `"ok"`) {
		t.Errorf("GET /health = %d %s", status, body)
	}
}
