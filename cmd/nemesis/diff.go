package main

import (
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff renders the line-level changes turning from into to, prefixing
// removed lines with "-", added lines with "+" and unchanged lines with a
// space. Identical inputs give an empty string.
func lineDiff(from, to string) string {
	if from == to {
		return ""
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	var out strings.Builder
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			switch d.Type {
			case diffpatch.DiffDelete:
				out.WriteString(red("-" + line))
			case diffpatch.DiffInsert:
				out.WriteString(green("+" + line))
			default:
				out.WriteString(" " + line)
			}
		}
	}
	return out.String()
}
