package mdshow

// Slides is an ordered sequence of rendered slides.
type Slides []*Slide

// Slide is one top-level-header-delimited unit of the document, rendered to HTML.
type Slide struct {
	Index  int    `json:"index"`
	Title  string `json:"title,omitempty"`
	Source string `json:"source"`
	HTML   string `json:"html"`
	Active bool   `json:"active,omitempty"`
}

// Titles returns the title of every slide.
func (ss Slides) Titles() []string {
	titles := make([]string, len(ss))
	for i, s := range ss {
		titles[i] = s.Title
	}
	return titles
}

// clone returns a deep copy so callers can read slides outside the navigator lock.
func (ss Slides) clone() Slides {
	cloned := make(Slides, len(ss))
	for i, s := range ss {
		c := *s
		cloned[i] = &c
	}
	return cloned
}
