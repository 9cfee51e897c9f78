/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/k1LoW/mdshow"
	"github.com/k1LoW/mdshow/server"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var (
	listen      string
	openBrowser bool
	watch       bool
	serveFlags  buildFlags
)

var serveCmd = &cobra.Command{
	Use:   "serve [SOURCE...]",
	Short: "serve a Markdown document as a slideshow",
	Long: `serve a Markdown document as a slideshow.

SOURCE is a local file or an http(s) URL. Sources are tried in order and the first
available one is presented. Without SOURCE, the sources of the config file are tried,
then slides.md and README.md.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger, err := newLogger(true)
		if err != nil {
			return err
		}
		src, b, cfg, err := serveFlags.newPipeline(cmd, args, logger)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("listen") {
			listen = cfg.DefaultListen()
		}
		if !cmd.Flags().Changed("open") {
			openBrowser = cfg.DefaultOpen()
		}
		if !cmd.Flags().Changed("watch") {
			watch = cfg.DefaultWatch()
		}

		srv := server.New(server.WithLogger(logger))
		doc, err := src.Load(ctx)
		switch {
		case errors.Is(err, mdshow.ErrNoDocument):
			srv.SetNotice(src.Notice())
		case err != nil:
			return err
		default:
			p, err := b.Build(ctx, doc)
			if err != nil {
				return err
			}
			srv.Update(p)
		}

		ln, err := net.Listen("tcp", listen)
		if err != nil {
			return err
		}
		url := "http://" + ln.Addr().String()
		cmd.Printf("Serving on %s\n", url)
		if openBrowser {
			if err := browser.OpenURL(url); err != nil {
				logger.Warn("failed to open browser", slog.String("url", url), slog.String("error", err.Error()))
			}
		}

		hs := &http.Server{
			Handler:           srv,
			ReadHeaderTimeout: 10 * time.Second,
		}
		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		})
		if watch && doc != nil && doc.Path != "" {
			eg.Go(func() error {
				return mdshow.Watch(ctx, doc.Path, logger, func(ctx context.Context) {
					reload(ctx, src, b, srv, logger)
				})
			})
		}
		return eg.Wait()
	},
}

// reload rebuilds the presentation. On failure the current presentation is kept.
func reload(ctx context.Context, src *mdshow.Source, b *mdshow.Builder, srv *server.Server, logger *slog.Logger) {
	doc, err := src.Load(ctx)
	if err != nil {
		logger.Warn("failed to reload document, keeping the current presentation", slog.String("error", err.Error()))
		return
	}
	p, err := b.Build(ctx, doc)
	if err != nil {
		logger.Warn("failed to rebuild presentation, keeping the current presentation", slog.String("error", err.Error()))
		return
	}
	srv.Update(p)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on (default \"localhost:8080\")")
	serveCmd.Flags().BoolVarP(&openBrowser, "open", "o", false, "open the presentation in a browser")
	serveCmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild the presentation when the document changes")
	serveFlags.register(serveCmd)
}
