package mdshow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/mdshow/md"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Presentation is a document rendered into slides.
type Presentation struct {
	Title       string         `json:"title"`
	Source      string         `json:"source"`
	Frontmatter md.Frontmatter `json:"frontmatter,omitempty"`
	Slides      Slides         `json:"slides"`
	Revision    string         `json:"revision"`
}

// Builder renders documents into presentations.
type Builder struct {
	concurrency     int
	expandVariables bool
	cache           *renderCache
	logger          *slog.Logger
}

type Option func(*Builder) error

func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		b.logger = logger
		return nil
	}
}

// WithConcurrency sets how many slides are rendered at the same time.
func WithConcurrency(n int) Option {
	return func(b *Builder) error {
		if n < 1 {
			return fmt.Errorf("invalid concurrency: %d, must be greater than 0", n)
		}
		b.concurrency = n
		return nil
	}
}

// WithExpandVariables enables {{ expr }} expansion against the front matter.
func WithExpandVariables(enable bool) Option {
	return func(b *Builder) error {
		b.expandVariables = enable
		return nil
	}
}

// NewBuilder creates a new Builder.
func NewBuilder(opts ...Option) (_ *Builder, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b := &Builder{
		concurrency: defaultConcurrency,
		cache:       &renderCache{},
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Build splits doc into slides and renders each of them. The first slide is active.
func (b *Builder) Build(ctx context.Context, doc *Document) (_ *Presentation, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	m := md.Parse(doc.Content)
	if b.expandVariables {
		if err := m.ExpandVariables(); err != nil {
			b.logger.Warn("failed to expand variables, using the document as is", slog.String("source", doc.Name), slog.String("error", err.Error()))
		}
	}

	slides, err := b.render(ctx, m.Fragments)
	if err != nil {
		return nil, err
	}
	if len(slides) == 0 {
		b.logger.Warn("no slides found", slog.String("source", doc.Name))
	} else {
		slides[0].Active = true
	}

	p := &Presentation{
		Title:       presentationTitle(m.Frontmatter, slides, doc.Name),
		Source:      doc.Name,
		Frontmatter: m.Frontmatter,
		Slides:      slides,
		Revision:    uuid.New().String(),
	}
	b.logger.Info("build completed", slog.String("source", doc.Name), slog.Int("slides", len(slides)), slog.String("revision", p.Revision))
	return p, nil
}

// render renders the fragments in parallel. Each fragment is independent of the others.
func (b *Builder) render(ctx context.Context, fragments []string) (Slides, error) {
	slides := make(Slides, len(fragments))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, fragment := range fragments {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			html, ok := b.cache.load(fragment)
			if ok {
				b.logger.Info("reused slide", slog.Int("index", i))
			} else {
				html = md.Render(fragment)
				b.cache.store(fragment, html)
				b.logger.Info("rendered slide", slog.Int("index", i))
			}
			slides[i] = &Slide{
				Index:  i,
				Title:  md.Title(fragment),
				Source: fragment,
				HTML:   html,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	b.cache.retain(fragments)
	return slides, nil
}

// presentationTitle prefers the front matter title, then the first slide title, then the source name.
func presentationTitle(fm md.Frontmatter, slides Slides, source string) string {
	if t := fm.Title(); t != "" {
		return t
	}
	for _, s := range slides {
		if s.Title != "" {
			return s.Title
		}
	}
	return source
}
