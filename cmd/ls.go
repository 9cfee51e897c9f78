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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	lsJSON  bool
	lsFlags buildFlags
)

type slideEntry struct {
	Page  int    `json:"page"`
	Title string `json:"title"`
}

var lsCmd = &cobra.Command{
	Use:   "ls [SOURCE...]",
	Short: "list the slides of a Markdown document",
	Long: `list the slides of a Markdown document.

Each line is the page number (as accepted by "render --page") and the slide title.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, err := newLogger(false)
		if err != nil {
			return err
		}
		src, b, _, err := lsFlags.newPipeline(cmd, args, logger)
		if err != nil {
			return err
		}
		doc, err := src.Load(ctx)
		if err != nil {
			return err
		}
		p, err := b.Build(ctx, doc)
		if err != nil {
			return err
		}
		entries := make([]slideEntry, len(p.Slides))
		for i, title := range p.Slides.Titles() {
			entries[i] = slideEntry{Page: i + 1, Title: title}
		}
		if lsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}
		for _, e := range entries {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", e.Page, e.Title); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVarP(&lsJSON, "json", "", false, "output in JSON format")
	lsFlags.register(lsCmd)
}
