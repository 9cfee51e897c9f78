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
	"log/slog"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/mdshow"
	"github.com/k1LoW/mdshow/config"
	"github.com/spf13/cobra"
)

// buildFlags are the flags shared by the commands that build a presentation.
// A flag left unset falls back to the config file.
type buildFlags struct {
	retryMax        int
	concurrency     int
	expandVariables bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.retryMax, "retry-max", "", 0, "number of retries of a failed HTTP fetch")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "c", 0, "number of slides rendered at the same time")
	cmd.Flags().BoolVarP(&f.expandVariables, "expand", "e", false, "expand {{ expr }} in the body with front matter values")
}

func (f *buildFlags) resolve(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("retry-max") {
		f.retryMax = cfg.DefaultRetryMax()
	}
	if !cmd.Flags().Changed("concurrency") {
		f.concurrency = cfg.DefaultConcurrency()
	}
	if !cmd.Flags().Changed("expand") {
		f.expandVariables = cfg.DefaultExpandVariables()
	}
}

// newPipeline loads the config and returns the source and builder for the given sources.
// Without arguments the sources of the config file are used, then the default names.
func (f *buildFlags) newPipeline(cmd *cobra.Command, args []string, logger *slog.Logger) (_ *mdshow.Source, _ *mdshow.Builder, _ *config.Config, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, nil, nil, err
	}
	f.resolve(cmd, cfg)
	names := args
	if len(names) == 0 {
		names = cfg.Sources
	}
	src, err := mdshow.NewSource(names,
		mdshow.WithRetryMax(f.retryMax),
		mdshow.WithSourceLogger(logger),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	b, err := mdshow.NewBuilder(
		mdshow.WithLogger(logger),
		mdshow.WithConcurrency(f.concurrency),
		mdshow.WithExpandVariables(f.expandVariables),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return src, b, cfg, nil
}
