package mdshow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/mdshow/md"
	"github.com/k1LoW/mdshow/version"
)

var _ retryablehttp.LeveledLogger = (*apiLogger)(nil)

var userAgent = "k1LoW-mdshow/" + version.Version + " (+https://github.com/k1LoW/mdshow)"

// DefaultSourceNames are tried in order when no source is given.
var DefaultSourceNames = []string{"slides.md", "README.md"}

const fetchTimeout = 30 * time.Second

// Document is the raw text of a slide document.
type Document struct {
	Name    string
	Content []byte
	// Path is the local file path, empty for documents fetched over HTTP.
	Path string
}

// Source resolves a document from an ordered list of names, falling back to the next
// name when one is unavailable. A name is a local path or an http(s) URL.
type Source struct {
	names    []string
	baseDir  string
	retryMax int
	client   *retryablehttp.Client
	logger   *slog.Logger
}

type SourceOption func(*Source) error

// WithBaseDir sets the directory relative local names are resolved against.
func WithBaseDir(dir string) SourceOption {
	return func(s *Source) error {
		s.baseDir = dir
		return nil
	}
}

// WithRetryMax sets how many times a failed HTTP fetch is retried.
func WithRetryMax(n int) SourceOption {
	return func(s *Source) error {
		if n < 0 {
			return fmt.Errorf("invalid retry max: %d", n)
		}
		s.retryMax = n
		return nil
	}
}

func WithSourceLogger(logger *slog.Logger) SourceOption {
	return func(s *Source) error {
		s.logger = logger
		return nil
	}
}

// NewSource creates a new Source. With no names DefaultSourceNames are used.
func NewSource(names []string, opts ...SourceOption) (_ *Source, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if len(names) == 0 {
		names = DefaultSourceNames
	}
	s := &Source{
		names:  names,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = fetchTimeout
	client.RetryMax = s.retryMax
	client.RetryWaitMin = 1 * time.Second
	client.RetryWaitMax = 30 * time.Second
	client.Logger = newAPILogger(s.logger)
	s.client = client
	return s, nil
}

// Names returns the names tried by Load, in order.
func (s *Source) Names() []string {
	return s.names
}

// Load returns the first available document. If none is available it returns ErrNoDocument.
func (s *Source) Load(ctx context.Context) (_ *Document, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	for _, name := range s.names {
		doc, err := s.load(ctx, name)
		if err != nil {
			s.logger.Info("document unavailable", slog.String("source", name), slog.String("error", err.Error()))
			continue
		}
		s.logger.Info("loaded document", slog.String("source", name), slog.Int("bytes", len(doc.Content)))
		return doc, nil
	}
	s.logger.Warn("failed to find any document", slog.String("sources", strings.Join(s.names, ",")))
	return nil, ErrNoDocument
}

// Notice returns the message shown in place of the slides when no document is available.
func (s *Source) Notice() string {
	strong := make([]string, len(s.names))
	for i, name := range s.names {
		strong[i] = "<strong>" + md.Escape(name) + "</strong>"
	}
	return fmt.Sprintf("No %s file found.", strings.Join(strong, " or "))
}

func (s *Source) load(ctx context.Context, name string) (*Document, error) {
	if isURL(name) {
		b, err := s.fetch(ctx, name)
		if err != nil {
			return nil, err
		}
		return &Document{Name: name, Content: b}, nil
	}
	p := name
	if !filepath.IsAbs(p) && s.baseDir != "" {
		p = filepath.Join(s.baseDir, p)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return &Document{Name: name, Content: b, Path: p}, nil
}

func (s *Source) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document from URL %s: %w", u, err)
	}
	req.Header.Set("User-Agent", userAgent)
	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document from URL %s: %w", u, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch document from URL %s: status code %d", u, res.StatusCode)
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document from URL %s: %w", u, err)
	}
	return b, nil
}

func isURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

type apiLogger struct {
	l *slog.Logger
}

func (l *apiLogger) Error(msg string, keysAndValues ...any) {
	l.l.Error(msg, append([]any{slog.String("original_log_level", "error")}, keysAndValues...)...)
}
func (l *apiLogger) Info(msg string, keysAndValues ...any) {
	l.l.Info(msg, append([]any{slog.String("original_log_level", "info")}, keysAndValues...)...)
}
func (l *apiLogger) Debug(msg string, keysAndValues ...any) {
	if strings.HasPrefix(msg, "retrying") {
		// shown as a spinner on the console
		l.l.Info(msg, append([]any{slog.String("original_log_level", "debug")}, keysAndValues...)...)
		return
	}
	l.l.Debug(msg, append([]any{slog.String("original_log_level", "debug")}, keysAndValues...)...)
}
func (l *apiLogger) Warn(msg string, keysAndValues ...any) {
	l.l.Warn(msg, append([]any{slog.String("original_log_level", "warn")}, keysAndValues...)...)
}

func newAPILogger(l *slog.Logger) retryablehttp.LeveledLogger {
	return &apiLogger{
		l: l.WithGroup("http"),
	}
}
