package resolver

import (
	"strings"

	"github.com/vk/samerge/internal/profile"
)

// splice rebuilds the document text with the ability spans moved into order.
// Lines before the first span and after the last span are kept as they are;
// anything between two spans that belongs to neither is dropped.
func splice(idx *lineIndex, order []string) string {
	if idx.first < 0 {
		return strings.Join(idx.lines, "")
	}

	var sb strings.Builder
	writeLines(&sb, idx.lines, profile.Range{Start: 0, End: idx.first})
	for _, name := range order {
		writeLines(&sb, idx.lines, idx.ranges[name])
	}
	writeLines(&sb, idx.lines, profile.Range{Start: idx.last, End: len(idx.lines)})
	return sb.String()
}

func writeLines(sb *strings.Builder, lines []string, r profile.Range) {
	for _, line := range lines[r.Start:r.End] {
		sb.WriteString(line)
	}
}
