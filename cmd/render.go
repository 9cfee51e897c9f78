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
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/k1LoW/mdshow"
	"github.com/spf13/cobra"
)

var (
	out         string
	page        string
	renderFlags buildFlags
)

var renderCmd = &cobra.Command{
	Use:   "render [SOURCE...]",
	Short: "render a Markdown document into a self-contained HTML slideshow",
	Long: `render a Markdown document into a self-contained HTML slideshow.

The page navigates in the browser and needs no server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, err := newLogger(out != "-")
		if err != nil {
			return err
		}
		src, b, _, err := renderFlags.newPipeline(cmd, args, logger)
		if err != nil {
			return err
		}
		var pg *mdshow.Page
		doc, err := src.Load(ctx)
		switch {
		case errors.Is(err, mdshow.ErrNoDocument):
			pg = mdshow.NewNoticePage(src.Notice())
		case err != nil:
			return err
		default:
			p, err := b.Build(ctx, doc)
			if err != nil {
				return err
			}
			pages, err := pageToPages(page, len(p.Slides))
			if err != nil {
				return err
			}
			pg = mdshow.NewPage(p, selectSlides(p.Slides, pages))
			pg.Static = true
		}

		var w io.Writer = cmd.OutOrStdout()
		if out != "-" {
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return pg.Write(w)
	},
}

// selectSlides returns copies of the slides at the given 1-based pages, renumbered from 0.
// The first selected slide is active.
func selectSlides(slides mdshow.Slides, pages []int) mdshow.Slides {
	selected := make(mdshow.Slides, 0, len(pages))
	for i, p := range pages {
		s := *slides[p-1]
		s.Index = i
		s.Active = i == 0
		selected = append(selected, &s)
	}
	return selected
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&out, "out", "O", "-", "output file. \"-\" writes to stdout")
	renderCmd.Flags().StringVarP(&page, "page", "p", "", "pages to render (e.g. 1,3-5,-2,4-)")
	renderFlags.register(renderCmd)
}

func pageToPages(page string, total int) ([]int, error) {
	if page == "" {
		// If no page is specified, return all pages
		pages := make([]int, total)
		for i := 0; i < total; i++ {
			pages[i] = i + 1
		}
		return pages, nil
	}

	var result []int
	// Split by comma to handle comma-separated list
	parts := strings.Split(page, ",")

	for _, part := range parts {
		if !strings.Contains(part, "-") {
			pageNum, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid page number: %s", part)
			}
			if pageNum < 1 || pageNum > total {
				return nil, fmt.Errorf("page number out of range: %d (total pages: %d)", pageNum, total)
			}
			result = append(result, pageNum)
			continue
		}

		start, end, _ := strings.Cut(part, "-")
		if strings.Contains(end, "-") {
			return nil, fmt.Errorf("invalid range format: %s", part)
		}
		startPage, endPage := 1, total
		var err error
		if start != "" {
			if startPage, err = strconv.Atoi(start); err != nil {
				return nil, fmt.Errorf("invalid page number: %s", start)
			}
		}
		if end != "" {
			if endPage, err = strconv.Atoi(end); err != nil {
				return nil, fmt.Errorf("invalid page number: %s", end)
			}
		}
		if startPage < 1 || startPage > total || endPage < 1 || endPage > total || startPage > endPage {
			return nil, fmt.Errorf("invalid page range: %s (total pages: %d)", part, total)
		}
		for i := startPage; i <= endPage; i++ {
			result = append(result, i)
		}
	}

	return result, nil
}
