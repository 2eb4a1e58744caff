package output

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Diff returns a line diff of two documents. Inserted lines are prefixed
// with "+ ", deleted lines with "- ". Long unchanged runs are collapsed.
// An empty string means the documents are identical.
func Diff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
		return ""
	}

	var sb strings.Builder
	last := len(diffs) - 1
	for i, d := range diffs {
		lines := splitDiffLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			writeLines(&sb, "+ ", lines)
		case diffmatchpatch.DiffDelete:
			writeLines(&sb, "- ", lines)
		case diffmatchpatch.DiffEqual:
			writeContext(&sb, lines, i == 0, i == last)
		}
	}
	return sb.String()
}

func writeContext(sb *strings.Builder, lines []string, first, last bool) {
	head, tail := contextLines, contextLines
	if first {
		head = 0
	}
	if last {
		tail = 0
	}
	if len(lines) <= head+tail {
		writeLines(sb, "  ", lines)
		return
	}
	writeLines(sb, "  ", lines[:head])
	fmt.Fprintf(sb, "@@ %d unchanged lines @@\n", len(lines)-head-tail)
	writeLines(sb, "  ", lines[len(lines)-tail:])
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}

func splitDiffLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
