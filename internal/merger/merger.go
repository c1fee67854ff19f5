// Package merger folds single-ability fragments into one unsorted document
// per host process.
//
// This is the tree stage of a merge run: ability subtrees are copied with
// etree so their inner whitespace survives, and the result is written to a
// scratch directory for the resolver to reorder line by line.
package merger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/beevik/etree"
	"github.com/vk/samerge/internal/classifier"
	"github.com/vk/samerge/internal/ctxlog"
)

const indent = "    "

// ProcessGroup collects every fragment hosted by one process, in arrival order.
type ProcessGroup struct {
	Process string
	// LibPaths is de-duplicated, first occurrence wins.
	LibPaths []string
	// Abilities are detached copies of each fragment's <systemability>.
	Abilities []*etree.Element
}

// Merger accumulates ProcessGroups across a whole input list.
type Merger struct {
	groups map[string]*ProcessGroup
	order  []string
}

// New returns an empty Merger.
func New() *Merger {
	return &Merger{groups: make(map[string]*ProcessGroup)}
}

// Add folds one classified fragment into its process group, creating the
// group on first sight.
func (m *Merger) Add(frag *classifier.Mergeable) {
	g, ok := m.groups[frag.Process]
	if !ok {
		g = &ProcessGroup{Process: frag.Process}
		m.groups[frag.Process] = g
		m.order = append(m.order, frag.Process)
	}
	if !slices.Contains(g.LibPaths, frag.LibPath) {
		g.LibPaths = append(g.LibPaths, frag.LibPath)
	}
	g.Abilities = append(g.Abilities, frag.Ability.Copy())
}

// Groups returns the process groups in the order their first fragment arrived.
func (m *Merger) Groups() []*ProcessGroup {
	out := make([]*ProcessGroup, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.groups[name])
	}
	return out
}

// Document builds the merged <info> document of the group:
//
//	<?xml version="1.0" encoding="utf-8"?>
//	<info>
//	    <process>NAME</process>
//	    <loadlibs>
//	        <libpath>LIB</libpath>
//	    </loadlibs>
//	    <systemability>...</systemability>
//	</info>
func (g *ProcessGroup) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.CreateText("\n")

	root := doc.CreateElement("info")
	root.CreateText("\n" + indent)
	root.CreateElement("process").SetText(g.Process)

	root.CreateText("\n" + indent)
	libs := root.CreateElement("loadlibs")
	for _, lib := range g.LibPaths {
		libs.CreateText("\n" + indent + indent)
		libs.CreateElement("libpath").SetText(lib)
	}
	libs.CreateText("\n" + indent)

	for _, sa := range g.Abilities {
		root.CreateText("\n" + indent)
		root.AddChild(sa.Copy())
	}
	root.CreateText("\n")
	doc.CreateText("\n")
	return doc
}

// WriteScratch writes one document per process into dir, named <process>.xml,
// and returns the written paths in group order.
func (m *Merger) WriteScratch(ctx context.Context, dir string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	paths := make([]string, 0, len(m.order))
	for _, g := range m.Groups() {
		data, err := g.Document().WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize merged profile for process %s: %w", g.Process, err)
		}
		p := filepath.Join(dir, g.Process+".xml")
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write merged profile: %w", err)
		}
		logger.Debug("Merged process profile written.", "process", g.Process, "abilities", len(g.Abilities), "libs", len(g.LibPaths), "path", p)
		paths = append(paths, p)
	}
	return paths, nil
}
