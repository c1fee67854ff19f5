package crosscheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/samerge/internal/dag"
	"github.com/vk/samerge/internal/profile"
	"github.com/vk/samerge/internal/testutil"
)

func graph(nodes map[string][]string, order ...string) *dag.Graph {
	g := dag.New()
	for _, n := range order {
		g.AddNode(n, nodes[n]...)
	}
	return g
}

func TestValidate_NoCycle(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.Context(t)
	artifact := testutil.WriteFile(t, t.TempDir(), "p1.xml", "<info/>")

	v := New()
	v.Add(graph(map[string][]string{"1": {"2"}}, "1"))
	v.Add(graph(map[string][]string{"2": {"3"}, "3": nil}, "2", "3"))

	require.NoError(t, v.Validate(ctx, []string{artifact}))
	assert.FileExists(t, artifact)
}

func TestValidate_CrossProcessCycle(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, logs := testutil.Context(t)
	out := t.TempDir()
	p1 := testutil.WriteFile(t, out, "p1.xml", "<info/>")
	p2 := testutil.WriteFile(t, out, "p2.xml", "<info/>")
	copied := testutil.WriteFile(t, out, "custom.xml", "<custom/>")

	v := New()
	v.Add(graph(map[string][]string{"1": {"2"}}, "1"))
	v.Add(graph(map[string][]string{"2": {"1"}}, "2"))

	// --- Act ---
	err := v.Validate(ctx, []string{p1, p2, copied})

	// --- Assert ---
	require.ErrorIs(t, err, profile.ErrCrossProcessCircularDependency)
	require.ErrorIs(t, err, profile.ErrCircularDependency, "the inner cycle stays reachable")
	assert.ErrorContains(t, err, "1->2->1")

	var perr *profile.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, []string{"1", "2", "1"}, perr.Path)

	entries, rerr := os.ReadDir(out)
	require.NoError(t, rerr)
	assert.Empty(t, entries)
	assert.Contains(t, logs.String(), "level=ERROR")
}

func TestValidate_RemoveFailureIsReported(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.Context(t)
	dir := t.TempDir()
	// A non-empty directory cannot be removed with os.Remove.
	testutil.WriteFile(t, dir, filepath.Join("stuck", "x"), "")

	v := New()
	v.Add(graph(map[string][]string{"1": {"1"}}, "1"))

	err := v.Validate(ctx, []string{filepath.Join(dir, "stuck")})
	require.ErrorIs(t, err, profile.ErrCrossProcessCircularDependency)
	assert.DirExists(t, filepath.Join(dir, "stuck"))
}
