// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Command gifinfo prints the dimensions, frame count, and per-frame
// delay times of a GIF file. It exists to exercise the gifdecode façade
// end to end; it is not part of the core library.
package main

import (
	"fmt"
	"os"

	"github.com/ostafen/gifdecode"
	"github.com/ostafen/gifdecode/internal/gifdiag"
	"github.com/ostafen/gifdecode/pkg/progress"
	"github.com/spf13/cobra"
)

const appName = "gifinfo"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          appName + " <file.gif>",
		Short:        appName + " - print GIF frame and timing info",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().String("log-level", "WARN", "diagnostic log level: DEBUG, INFO, WARN, ERROR")
	cmd.Flags().Bool("progress", false, "print a decode progress bar to stderr")
	cmd.Flags().Bool("strict", false, "reject image descriptors with reserved packed-field bits set")
	cmd.Flags().Int("max-frames", 0, "abort the decode once more than this many frames would be produced (0 = unbounded)")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	logLevel, _ := cmd.Flags().GetString("log-level")
	showProgress, _ := cmd.Flags().GetBool("progress")
	strict, _ := cmd.Flags().GetBool("strict")
	maxFrames, _ := cmd.Flags().GetInt("max-frames")

	opts := []gifdecode.Option{
		gifdecode.WithLogger(gifdiag.New(os.Stderr, gifdiag.ParseLevel(logLevel))),
		gifdecode.WithStrict(strict),
		gifdecode.WithMaxFrames(maxFrames),
	}
	if showProgress {
		reporter := progress.NewReporter(os.Stderr, 0)
		opts = append(opts, gifdecode.WithProgress(reporter.Advance))
		defer reporter.Finish()
	}

	g, err := gifdecode.Load(f, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	fmt.Printf("%s: %dx%d, %d frame(s)\n", args[0], g.Width, g.Height, len(g.ImageFrames))
	for i, frame := range g.ImageFrames {
		fmt.Printf("  frame %d: delay %dcs\n", i, frame.DelayTime)
	}
	if len(g.Diagnostics) > 0 {
		fmt.Printf("  %d diagnostic(s) (see log)\n", len(g.Diagnostics))
	}
	return nil
}
