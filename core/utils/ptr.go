package utils

// Ptr returns a pointer to v, for filling optional struct fields inline.
func Ptr[T any](v T) *T {
	return &v
}

// TextPtr returns a pointer to s, or nil when s is empty. Optional text
// columns treat the empty string as absent.
func TextPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToAnySlice widens a typed slice for variadic any parameters, such as the
// values of an IN condition.
func ToAnySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
