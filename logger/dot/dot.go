// Package dot is a slog.Handler that reports build progress as one glyph per event.
package dot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
)

var (
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

var _ slog.Handler = (*dotHandler)(nil)

type dotHandler struct {
	handler slog.Handler
	spinner *spinner.Spinner
	stdout  io.Writer
	mu      *sync.Mutex
	prefix  *[]byte
}

// New returns a handler writing to stdout. h decides which levels are enabled.
func New(h slog.Handler) (_ *dotHandler, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	return NewWithWriter(h, colorable.NewColorableStdout())
}

// NewWithWriter returns a handler writing to w.
func NewWithWriter(h slog.Handler, w io.Writer) (_ *dotHandler, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	if err := s.Color("yellow"); err != nil {
		return nil, err
	}
	s.Start()
	s.Disable()
	return &dotHandler{
		handler: h,
		spinner: s,
		stdout:  w,
		mu:      &sync.Mutex{},
		prefix:  new([]byte),
	}, nil
}

func (h *dotHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *dotHandler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	h.mu.Lock()
	defer h.mu.Unlock()

	if strings.HasPrefix(r.Message, "retrying") {
		if !h.spinner.Enabled() {
			h.spinner.Enable()
		}
		return nil
	}
	if h.spinner.Enabled() {
		h.spinner.Disable()
		_, _ = h.stdout.Write(*h.prefix)
	}
	switch {
	case r.Message == "rendered slide":
		return h.write(yellow("."))
	case r.Message == "reused slide":
		return h.write(gray("."))
	case r.Message == "loaded document":
		return h.write(cyan("*"))
	case r.Message == "document changed":
		return h.write(green("~"))
	case strings.HasPrefix(r.Message, "failed to") || r.Message == "no slides found":
		return h.write(red("!"))
	case r.Message == "build completed":
		*h.prefix = (*h.prefix)[:0]
		_, _ = h.stdout.Write([]byte("\n"))
		return nil
	}
	return nil
}

func (h *dotHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dotHandler{handler: h.handler.WithAttrs(attrs), spinner: h.spinner, stdout: h.stdout, mu: h.mu, prefix: h.prefix}
}

func (h *dotHandler) WithGroup(name string) slog.Handler {
	return &dotHandler{handler: h.handler.WithGroup(name), spinner: h.spinner, stdout: h.stdout, mu: h.mu, prefix: h.prefix}
}

func (h *dotHandler) write(s string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if _, err := h.stdout.Write([]byte(s)); err != nil {
		return err
	}
	*h.prefix = append(*h.prefix, s...)
	return nil
}
