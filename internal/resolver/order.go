package resolver

import (
	"slices"

	"github.com/vk/samerge/internal/profile"
)

// order buckets abilities by phase, keeping discovery order inside a bucket,
// applies one corrective pass per bucket and concatenates the buckets from
// highest to lowest priority.
func (r *Resolver) order(abilities []*profile.SystemAbility) []string {
	buckets := make(map[profile.Phase][]string)
	deps := make(map[string][]string, len(abilities))
	for _, sa := range abilities {
		buckets[sa.Phase] = append(buckets[sa.Phase], sa.Name)
		deps[sa.Name] = sa.Depends
	}

	out := make([]string, 0, len(abilities))
	for _, phase := range r.policy.Phases() {
		out = append(out, correctBucket(buckets[phase], deps)...)
	}
	return out
}

// correctBucket visits the bucket's abilities in their original order. For
// each dependency that lives in the same bucket but currently sits after its
// dependant, the two entries swap places. The pass runs once and never
// revisits a swap, so chains longer than two may stay partially unordered.
func correctBucket(bucket []string, deps map[string][]string) []string {
	list := slices.Clone(bucket)
	for _, name := range bucket {
		for _, dep := range deps[name] {
			j := slices.Index(list, dep)
			if j < 0 {
				continue
			}
			if i := slices.Index(list, name); j > i {
				list[i], list[j] = list[j], list[i]
			}
		}
	}
	return list
}
