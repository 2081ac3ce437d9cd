// SPDX-License-Identifier: Apache-2.0
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"ycf/grammar"
	"ycf/internal/highlight"
	"ycf/internal/scanner"
)

var (
	spansFlag = flag.Bool("spans", false, "print the classified span tree instead of highlighting")
	checkFlag = flag.Bool("check", false, "run the strict grammar check and report the result")
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Println("Usage: ycf [-spans|-check] <file.ycf>")
		os.Exit(1)
	}

	startTime := time.Now()
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *checkFlag:
		if _, err := grammar.ParseSource(path, string(source)); err != nil {
			fmt.Print(formatParseError(path, err, string(source)))
			color.Red("Check failed after %s", formatDuration(time.Since(startTime)))
			os.Exit(1)
		}
		color.Green("Successfully checked %s in %s", path, formatDuration(time.Since(startTime)))

	case *spansFlag:
		printSpans(os.Stdout, string(source), scanner.Scan(string(source)), 0)

	default:
		fmt.Print(highlight.Render(string(source), highlight.DefaultTheme()))
	}
}

func printSpans(w io.Writer, source string, spans []scanner.Span, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, sp := range spans {
		fmt.Fprintf(w, "%s%s [%d,%d) %q\n", indent, sp.Category, sp.Start, sp.End, sp.Text(source))
		printSpans(w, source, sp.Children, depth+1)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

func formatParseError(path string, err error, source string) string {
	line, column := 1, 1
	message := err.Error()

	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		if pos.Line > 0 {
			line = pos.Line
		}
		if pos.Column > 0 {
			column = pos.Column
		}
		message = perr.Message()
	}

	lines := strings.Split(source, "\n")
	var lineContent string
	if line-1 < len(lines) && line-1 >= 0 {
		lineContent = lines[line-1]
	}

	// Prepare the underline
	marker := strings.Repeat(" ", max(0, column-1)) + "^"

	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	// Compute width for line number column
	lineNumberWidth := len(fmt.Sprintf("%d", line))
	if lineNumberWidth < 3 {
		lineNumberWidth = 3 // minimum width for visual alignment
	}
	indent := strings.Repeat(" ", lineNumberWidth)

	return fmt.Sprintf(
		"%s: %s\n%s┌─ %s:%d:%d\n%s│\n%3d│%s\n%s│%s\n\n",
		red("error"),
		message,
		indent,
		path, line, column,
		indent,
		line, lineContent,
		indent,
		bold(marker),
	)
}
