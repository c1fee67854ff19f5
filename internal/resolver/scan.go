package resolver

import (
	"regexp"
	"strings"

	"github.com/vk/samerge/internal/profile"
)

var (
	abilityOpen  = regexp.MustCompile(`^<systemability(?:[\s>/]|$)`)
	abilityClose = regexp.MustCompile(`^</systemability\s*>`)
	nameValue    = regexp.MustCompile(`^<name>\s*([^<]*?)\s*</name>`)
)

// lineIndex is the result of the line pass over a merged document.
type lineIndex struct {
	lines  []string
	ranges map[string]profile.Range
	// count is the number of complete spans found, duplicates included.
	count int
	first int
	last  int
}

// splitLines splits s after every "\n", keeping the terminators so that
// joining the result reproduces s.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// scanLines locates every <systemability> span and the name declared inside it.
func scanLines(content string) *lineIndex {
	idx := &lineIndex{
		lines:  splitLines(content),
		ranges: make(map[string]profile.Range),
		first:  -1,
		last:   -1,
	}

	open := false
	start := 0
	name := ""
	for i, line := range idx.lines {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case abilityOpen.MatchString(trimmed):
			open, start, name = true, i, ""
		case !open:
		case abilityClose.MatchString(trimmed):
			idx.ranges[name] = profile.Range{Start: start, End: i + 1}
			idx.count++
			if idx.first < 0 {
				idx.first = start
			}
			idx.last = i + 1
			open = false
		case name == "":
			if m := nameValue.FindStringSubmatch(trimmed); m != nil {
				name = m[1]
			}
		}
	}
	return idx
}
