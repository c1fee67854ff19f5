package resolver

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/vk/samerge/internal/profile"
)

var abilityName = regexp.MustCompile(`^[1-9][0-9]*$`)

// extract validates the metadata of every ability element in document order
// and attaches the line span the line pass found for it.
func (r *Resolver) extract(file string, elems []*etree.Element, idx *lineIndex) ([]*profile.SystemAbility, error) {
	seen := make(map[string]struct{}, len(elems))
	out := make([]*profile.SystemAbility, 0, len(elems))

	for _, el := range elems {
		name, err := requireOne(file, el, "name")
		if err != nil {
			return nil, err
		}
		if !abilityName.MatchString(name) {
			return nil, profile.Malformedf(file, "name %q must be a decimal number without leading zeros", name)
		}
		if _, dup := seen[name]; dup {
			return nil, profile.Errorf(profile.ErrDuplicateName, file, "%s is declared more than once", name)
		}
		seen[name] = struct{}{}

		phase := r.policy.Default()
		switch phases := el.SelectElements("bootphase"); len(phases) {
		case 0:
		case 1:
			phase = profile.Phase(strings.TrimSpace(phases[0].Text()))
			if !r.policy.Known(phase) {
				return nil, profile.Errorf(profile.ErrNotSupportedBootphase, file, "%q on %s, expected one of %v", phase, name, r.policy.Phases())
			}
		default:
			return nil, profile.Malformedf(file, "%s has %d <bootphase> elements, at most one is allowed", name, len(phases))
		}

		onCreate, err := requireOne(file, el, "run-on-create")
		if err != nil {
			return nil, err
		}
		if onCreate != "true" && onCreate != "false" {
			return nil, profile.Malformedf(file, "run-on-create of %s must be \"true\" or \"false\", got %q", name, onCreate)
		}

		var depends []string
		for _, d := range el.SelectElements("depend") {
			depends = append(depends, strings.TrimSpace(d.Text()))
		}

		lines, ok := idx.ranges[name]
		if !ok {
			return nil, profile.Malformedf(file, "%s: SA tags and children must each start on their own line", name)
		}

		out = append(out, &profile.SystemAbility{
			Name:        name,
			Phase:       phase,
			RunOnCreate: onCreate == "true",
			Depends:     depends,
			Lines:       lines,
		})
	}
	return out, nil
}

func requireOne(file string, el *etree.Element, tag string) (string, error) {
	found := el.SelectElements(tag)
	if len(found) != 1 {
		return "", profile.Malformedf(file, "<systemability> needs exactly one <%s>, found %d", tag, len(found))
	}
	return strings.TrimSpace(found[0].Text()), nil
}
