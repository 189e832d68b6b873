package text

// Transform maps an input buffer to an output buffer. Implementations are
// pure and never fail.
type Transform func(string) string

// CaseTransform binds mode into a Transform.
func CaseTransform(mode CaseMode) Transform {
	return func(s string) string { return ApplyCase(s, mode) }
}

// TrimTransform binds spec into a Transform.
func TrimTransform(spec TrimSpec) Transform {
	spec = spec.Normalized()
	return func(s string) string { return ApplyTrim(s, spec) }
}
