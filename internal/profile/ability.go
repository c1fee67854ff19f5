package profile

// Range is a half-open span of line indexes [Start, End) in a merged document.
type Range struct {
	Start int
	End   int
}

// SystemAbility is the metadata of one <systemability> block.
type SystemAbility struct {
	Name        string
	Phase       Phase
	RunOnCreate bool
	Depends     []string
	Lines       Range
}
