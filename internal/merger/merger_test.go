package merger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/samerge/internal/classifier"
	"github.com/vk/samerge/internal/testutil"
)

func classify(t *testing.T, dir, name, content string) *classifier.Mergeable {
	t.Helper()
	ctx, _ := testutil.Context(t)
	frag, err := classifier.New(true).Classify(ctx, testutil.WriteFile(t, dir, name, content))
	require.NoError(t, err)
	m, ok := frag.(*classifier.Mergeable)
	require.True(t, ok)
	return m
}

func TestMerger_GroupsByProcessInArrivalOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	shared := testutil.Eager("3")
	shared.LibPath = "libsa_1.z.so"

	m := New()

	// --- Act ---
	m.Add(classify(t, dir, "a.xml", testutil.Fragment("foundation", testutil.Eager("1"))))
	m.Add(classify(t, dir, "b.xml", testutil.Fragment("media", testutil.Lazy("2"))))
	m.Add(classify(t, dir, "c.xml", testutil.Fragment("foundation", shared)))

	// --- Assert ---
	groups := m.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "foundation", groups[0].Process)
	assert.Equal(t, []string{"libsa_1.z.so"}, groups[0].LibPaths, "library paths are de-duplicated")
	assert.Len(t, groups[0].Abilities, 2)
	assert.Equal(t, "media", groups[1].Process)
	assert.Len(t, groups[1].Abilities, 1)
}

func TestProcessGroup_Document(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	m := New()
	m.Add(classify(t, dir, "a.xml", testutil.Fragment("foundation", testutil.Eager("1", "2"))))
	m.Add(classify(t, dir, "b.xml", testutil.Fragment("foundation", testutil.Lazy("2").InPhase("CoreStartPhase"))))

	// --- Act ---
	data, err := m.Groups()[0].Document().WriteToString()

	// --- Assert ---
	require.NoError(t, err)
	want := `<?xml version="1.0" encoding="utf-8"?>
<info>
    <process>foundation</process>
    <loadlibs>
        <libpath>libsa_1.z.so</libpath>
        <libpath>libsa_2.z.so</libpath>
    </loadlibs>
    <systemability>
        <name>1</name>
        <libpath>libsa_1.z.so</libpath>
        <depend>2</depend>
        <run-on-create>true</run-on-create>
    </systemability>
    <systemability>
        <name>2</name>
        <libpath>libsa_2.z.so</libpath>
        <run-on-create>false</run-on-create>
        <bootphase>CoreStartPhase</bootphase>
    </systemability>
</info>
`
	assert.Equal(t, want, data)
}

func TestMerger_WriteScratch(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, _ := testutil.Context(t)
	dir := t.TempDir()
	scratch := t.TempDir()
	m := New()
	m.Add(classify(t, dir, "a.xml", testutil.Fragment("foundation", testutil.Eager("1"))))
	m.Add(classify(t, dir, "b.xml", testutil.Fragment("media", testutil.Eager("2"))))

	// --- Act ---
	paths, err := m.WriteScratch(ctx, scratch)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(scratch, "foundation.xml"),
		filepath.Join(scratch, "media.xml"),
	}, paths)
	assert.Contains(t, testutil.ReadFile(t, paths[1]), "<process>media</process>")
}

func TestMerger_AddDoesNotAliasFragment(t *testing.T) {
	t.Parallel()

	frag := classify(t, t.TempDir(), "a.xml", testutil.Fragment("foundation", testutil.Eager("1")))
	m := New()
	m.Add(frag)

	m.Groups()[0].Abilities[0].CreateElement("extra")
	assert.Nil(t, frag.Ability.SelectElement("extra"))
}
