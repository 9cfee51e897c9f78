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
	"github.com/fatih/color"
	"github.com/k1LoW/mdshow"
	"github.com/k1LoW/mdshow/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [SOURCE...]",
	Short: "Check mdshow configuration and document sources",
	Long:  `Check mdshow configuration and document sources to ensure everything is set up correctly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Color setup
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check configuration file (optional)
		cmd.Print("🔧 Checking configuration file ... ")

		cfg, err := config.Load(profile)
		switch {
		case err != nil:
			red.Println("✗ CONFIG ERROR")
			cmd.Printf("   Error loading config: %v\n", err)
			cfg = &config.Config{}
			allOK = false
		case config.Path(profile) == "":
			yellow.Println("- NOT FOUND")
			cmd.Println("   Using default settings")
		default:
			green.Println("✓ OK")
			cmd.Printf("   Config file: %s\n", config.Path(profile))
		}

		// 2. Check document sources in order
		names := args
		if len(names) == 0 {
			names = cfg.Sources
		}
		if len(names) == 0 {
			names = mdshow.DefaultSourceNames
		}
		var found string
		for _, name := range names {
			cmd.Printf("📄 Checking %s ... ", name)
			src, err := mdshow.NewSource([]string{name}, mdshow.WithRetryMax(0))
			if err != nil {
				red.Println("✗ INVALID")
				cmd.Printf("   %v\n", err)
				continue
			}
			if _, err := src.Load(ctx); err != nil {
				yellow.Println("- UNAVAILABLE")
				continue
			}
			green.Println("✓ OK")
			if found == "" {
				found = name
			}
		}
		if found == "" {
			allOK = false
		}

		// Final message
		cmd.Println()
		if allOK {
			bold.Printf("🎉 ")
			green.Printf("Ready to present %s", found)
			bold.Println(".")
			cmd.Println()
			cmd.Println("Try serving it:")
			yellow.Println("  mdshow serve")
		} else {
			red.Println("⚠️  Setup is incomplete.")
			if found == "" {
				cmd.Println("\nNo document is available. Create slides.md or pass a file or URL as SOURCE.")
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
