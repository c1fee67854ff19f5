// Package testutil provides fragment builders and file helpers shared by the
// merge tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/samerge/internal/ctxlog"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Context returns a context carrying a debug-level text logger that writes
// into the returned buffer. Set SAMERGE_TEST_LOGS=true to echo the log.
func Context(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("SAMERGE_TEST_LOGS") == "true" {
			t.Logf("--- Log output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// Ability describes one <systemability> block of a test fragment.
// Empty fields are omitted from the generated XML.
type Ability struct {
	Name        string
	LibPath     string
	RunOnCreate string
	BootPhase   string
	Depends     []string
}

// Eager returns an ability with run-on-create=true.
func Eager(name string, depends ...string) Ability {
	return Ability{Name: name, LibPath: "libsa_" + name + ".z.so", RunOnCreate: "true", Depends: depends}
}

// Lazy returns an ability with run-on-create=false.
func Lazy(name string, depends ...string) Ability {
	return Ability{Name: name, LibPath: "libsa_" + name + ".z.so", RunOnCreate: "false", Depends: depends}
}

// InPhase returns a copy of a with the given boot phase.
func (a Ability) InPhase(phase string) Ability {
	a.BootPhase = phase
	return a
}

// Block renders a as an indented <systemability> element without a trailing newline.
func (a Ability) Block(indent string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s<systemability>\n", indent)
	inner := indent + "    "
	if a.Name != "" {
		fmt.Fprintf(&sb, "%s<name>%s</name>\n", inner, a.Name)
	}
	if a.LibPath != "" {
		fmt.Fprintf(&sb, "%s<libpath>%s</libpath>\n", inner, a.LibPath)
	}
	for _, dep := range a.Depends {
		fmt.Fprintf(&sb, "%s<depend>%s</depend>\n", inner, dep)
	}
	if a.RunOnCreate != "" {
		fmt.Fprintf(&sb, "%s<run-on-create>%s</run-on-create>\n", inner, a.RunOnCreate)
	}
	if a.BootPhase != "" {
		fmt.Fprintf(&sb, "%s<bootphase>%s</bootphase>\n", inner, a.BootPhase)
	}
	fmt.Fprintf(&sb, "%s</systemability>", indent)
	return sb.String()
}

// Fragment renders a single-ability <info> fragment for process.
func Fragment(process string, a Ability) string {
	return "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		"<info>\n" +
		"    <process>" + process + "</process>\n" +
		a.Block("    ") + "\n" +
		"</info>\n"
}

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// ReadFile returns the content of path as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// ListDir returns the base names of the entries in dir.
func ListDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
