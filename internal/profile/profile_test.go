package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	assert.Equal(t, []Phase{BootStartPhase, CoreStartPhase, OthersStartPhase}, p.Phases())
	assert.Equal(t, OthersStartPhase, p.Default())
	assert.Equal(t, 3, p.Priority(BootStartPhase))
	assert.Equal(t, 2, p.Priority(CoreStartPhase))
	assert.Equal(t, 1, p.Priority(OthersStartPhase))
	assert.Zero(t, p.Priority("LatePhase"))
	assert.True(t, p.Known(CoreStartPhase))
	assert.False(t, p.Known("LatePhase"))

	phases := p.Phases()
	phases[0] = "mutated"
	assert.Equal(t, BootStartPhase, p.Phases()[0], "Phases returns a copy")
}

func TestNewPolicy_UnknownFallbackPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewPolicy("LatePhase", BootStartPhase) })
}

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("message includes kind, file and detail", func(t *testing.T) {
		err := Malformedf("a.xml", "expected %d", 1)
		assert.EqualError(t, err, "malformed profile in a.xml: expected 1")
		assert.ErrorIs(t, err, ErrMalformedProfile)
		assert.NotErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("wrapped cause stays reachable", func(t *testing.T) {
		cause := errors.New("eof")
		err := &Error{Kind: ErrMalformedProfile, File: "a.xml", Msg: "cannot parse xml", Err: cause}
		assert.EqualError(t, err, "malformed profile in a.xml: cannot parse xml: eof")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("cycle renders its path", func(t *testing.T) {
		err := CycleError("p.xml", []string{"1", "2", "1"})
		assert.EqualError(t, err, "circular dependency in p.xml: 1->2->1")
	})

	t.Run("cross-process wraps the inner cycle", func(t *testing.T) {
		err := CrossProcessError(CycleError("", []string{"1", "2", "1"}))
		assert.EqualError(t, err, "cross-process circular dependency: circular dependency: 1->2->1")
		assert.ErrorIs(t, err, ErrCrossProcessCircularDependency)
		assert.ErrorIs(t, err, ErrCircularDependency)

		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, []string{"1", "2", "1"}, perr.Path)
	})
}
