package mdshow

import (
	"html/template"
	"io"

	"github.com/k1LoW/errors"
)

// Page is the document served to the browser: the slideshow container with one
// element per slide, or only a notice when there is nothing to show.
type Page struct {
	Title    string
	Slides   Slides
	Notice   string
	Revision string
	// Static pages navigate in the browser instead of asking the server.
	Static bool
}

// NewPage returns the page of a presentation.
func NewPage(p *Presentation, slides Slides) *Page {
	return &Page{
		Title:    p.Title,
		Slides:   slides,
		Revision: p.Revision,
	}
}

// NewNoticePage returns a page that shows only notice.
func NewNoticePage(notice string) *Page {
	return &Page{
		Title:  "mdshow",
		Notice: notice,
	}
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"unescaped": func(s string) template.HTML { return template.HTML(s) }, //nolint:gosec
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; }
.slide { display: none; padding: 2em 4em; }
.slide.active { display: block; }
.nav-button { position: fixed; bottom: 1em; font-size: 1.5em; background: none; border: none; cursor: pointer; }
#prevSlide { left: 1em; }
#nextSlide { right: 1em; }
</style>
</head>
<body>
{{- if .Notice}}
<p style="text-align:center; padding-top:50px;">{{unescaped .Notice}}</p>
{{- else}}
<div id="slideshow">
{{- range .Slides}}
<div class="slide{{if .Active}} active{{end}}" id="slide-{{.Index}}">{{unescaped .HTML}}</div>
{{- end}}
</div>
<button id="prevSlide" class="nav-button">&#9664;</button>
<button id="nextSlide" class="nav-button">&#9654;</button>
<script>
(function() {
  const slides = document.querySelectorAll('.slide');
  let current = Math.max(0, Array.from(slides).findIndex((s) => s.classList.contains('active')));
  function show(index) {
    if (slides.length === 0) return;
    slides[current].classList.remove('active');
    current = ((index % slides.length) + slides.length) % slides.length;
    slides[current].classList.add('active');
  }
{{- if .Static}}
  const next = () => show(current + 1);
  const prev = () => show(current - 1);
{{- else}}
  const move = (path) => fetch(path, {method: 'POST', headers: {'Accept': 'application/json'}})
    .then((r) => r.json())
    .then((st) => show(st.current));
  const next = () => move('/next');
  const prev = () => move('/prev');
  const revision = {{.Revision}};
  setInterval(() => {
    fetch('/state').then((r) => r.json()).then((st) => {
      if (st.revision !== revision) location.reload();
    });
  }, 1000);
{{- end}}
  document.addEventListener('keydown', (e) => {
    if (e.key === 'ArrowRight' || e.key === ' ') {
      next();
    } else if (e.key === 'ArrowLeft') {
      prev();
    }
  });
  document.getElementById('nextSlide').addEventListener('click', next);
  document.getElementById('prevSlide').addEventListener('click', prev);
})();
</script>
{{- end}}
</body>
</html>
`))

// Write writes the page as HTML.
func (p *Page) Write(w io.Writer) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	return pageTmpl.Execute(w, p)
}
