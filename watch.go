package mdshow

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
)

const watchOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watch calls onChange every time the file at path is written or replaced, until ctx is done.
// The parent directory is watched so that editors saving through a rename are noticed.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(context.Context)) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}
	logger.Debug("watching document", slog.String("path", target))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || name != target || ev.Op&watchOps == 0 {
				continue
			}
			logger.Info("document changed", slog.String("path", target), slog.String("op", ev.Op.String()))
			onChange(ctx)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("failed to watch document", slog.String("error", err.Error()))
		}
	}
}
