package profile

import "slices"

// Phase names a boot phase as written in a <bootphase> element.
type Phase string

const (
	BootStartPhase   Phase = "BootStartPhase"
	CoreStartPhase   Phase = "CoreStartPhase"
	OthersStartPhase Phase = "OthersStartPhase"
)

// Policy is the fixed boot-phase table a resolver works against. Phases are
// listed from highest to lowest priority; that is also the order in which
// resolved buckets are concatenated.
type Policy struct {
	phases   []Phase
	priority map[Phase]int
	fallback Phase
}

// DefaultPolicy returns the standard three-phase table:
// BootStartPhase (3) > CoreStartPhase (2) > OthersStartPhase (1).
func DefaultPolicy() Policy {
	return NewPolicy(OthersStartPhase, BootStartPhase, CoreStartPhase, OthersStartPhase)
}

// NewPolicy builds a Policy from phases ordered highest priority first.
// fallback is the phase assigned to abilities without a <bootphase>.
func NewPolicy(fallback Phase, phases ...Phase) Policy {
	priority := make(map[Phase]int, len(phases))
	for i, p := range phases {
		priority[p] = len(phases) - i
	}
	if _, ok := priority[fallback]; !ok {
		panic("profile: fallback phase " + string(fallback) + " is not part of the policy")
	}
	return Policy{
		phases:   slices.Clone(phases),
		priority: priority,
		fallback: fallback,
	}
}

// Phases returns the phases ordered highest priority first.
func (p Policy) Phases() []Phase {
	return slices.Clone(p.phases)
}

// Default returns the phase used when an ability declares none.
func (p Policy) Default() Phase {
	return p.fallback
}

// Known reports whether ph is one of the policy's phases.
func (p Policy) Known(ph Phase) bool {
	_, ok := p.priority[ph]
	return ok
}

// Priority returns the numeric priority of ph, or 0 for unknown phases.
func (p Policy) Priority(ph Phase) int {
	return p.priority[ph]
}
