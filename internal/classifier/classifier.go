// Package classifier inspects fragment files and sorts them into abilities
// that must be merged into a process profile and files that are copied
// through untouched.
package classifier

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/vk/samerge/internal/ctxlog"
	"github.com/vk/samerge/internal/profile"
)

const (
	infoTag       = "info"
	legacyTag     = "profile"
	processTag    = "process"
	abilityTag    = "systemability"
	libPathQuery  = "systemability/libpath"
	defaultLibDir = "/system/lib"
)

// Fragment is the classification of one input file: either *PassThrough or
// *Mergeable.
type Fragment interface {
	// Source returns the path the fragment was read from.
	Source() string
	fragment()
}

// PassThrough is a file whose root element is not <info>. It is copied to the
// output directory byte for byte and is never interpreted.
type PassThrough struct {
	Path string
	Root string
}

func (p *PassThrough) Source() string { return p.Path }
func (*PassThrough) fragment()        {}

// Mergeable is a single-ability <info> fragment destined for Process's profile.
type Mergeable struct {
	Path    string
	Process string
	LibPath string
	// Ability is the fragment's <systemability> element, whitespace included.
	Ability *etree.Element
}

func (m *Mergeable) Source() string { return m.Path }
func (*Mergeable) fragment()        {}

// Classifier decides how a fragment takes part in a merge run.
type Classifier struct {
	target64Bit bool
}

// New returns a Classifier for a 64-bit or 32-bit target image.
func New(target64Bit bool) *Classifier {
	return &Classifier{target64Bit: target64Bit}
}

// Classify reads the fragment at file and returns its classification.
func (c *Classifier) Classify(ctx context.Context, file string) (Fragment, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read fragment: %w", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &profile.Error{Kind: profile.ErrMalformedProfile, File: file, Msg: "cannot parse xml", Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, profile.Malformedf(file, "document has no root element")
	}

	switch root.Tag {
	case legacyTag:
		return nil, profile.Malformedf(file, "deprecated format; expected <%s> root, got <%s>", infoTag, legacyTag)
	case infoTag:
	default:
		logger.Warn("Fragment is not a system ability profile, copying it through.", "file", file, "root", root.Tag)
		return &PassThrough{Path: file, Root: root.Tag}, nil
	}

	process, err := singleText(file, root.SelectElements(processTag), processTag)
	if err != nil {
		return nil, err
	}
	if process == "." || process == ".." || strings.ContainsAny(process, `/\`) {
		return nil, profile.Malformedf(file, "process name %q cannot be used as a file name", process)
	}

	libPath, err := singleText(file, root.FindElements(libPathQuery), libPathQuery)
	if err != nil {
		return nil, err
	}

	abilities := root.SelectElements(abilityTag)
	if len(abilities) != 1 {
		return nil, profile.Malformedf(file, "expected exactly one <%s>, found %d", abilityTag, len(abilities))
	}

	m := &Mergeable{
		Path:    file,
		Process: process,
		LibPath: c.effectiveLibPath(libPath),
		Ability: abilities[0],
	}
	logger.Debug("Fragment classified.", "file", file, "process", m.Process, "libpath", m.LibPath)
	return m, nil
}

// effectiveLibPath applies the 32-bit rule: bare library names live in
// /system/lib on targets that are not 64-bit.
func (c *Classifier) effectiveLibPath(lib string) string {
	if c.target64Bit || path.Base(lib) != lib {
		return lib
	}
	return defaultLibDir + "/" + lib
}

func singleText(file string, elems []*etree.Element, what string) (string, error) {
	if len(elems) != 1 {
		return "", profile.Malformedf(file, "expected exactly one <%s>, found %d", what, len(elems))
	}
	text := strings.TrimSpace(elems[0].Text())
	if text == "" {
		return "", profile.Malformedf(file, "<%s> must not be empty", what)
	}
	return text, nil
}
