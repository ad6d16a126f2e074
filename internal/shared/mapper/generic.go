// Package mapper holds the generic slice helpers persistence mappers and DTO
// builders share.
package mapper

import "fmt"

// Map converts every element with fn. A nil input stays nil so optional
// collections survive a round trip.
func Map[T, R any](in []T, fn func(T) R) []R {
	if in == nil {
		return nil
	}
	out := make([]R, len(in))
	for i := range in {
		out[i] = fn(in[i])
	}
	return out
}

// TryMap is Map for conversions that can fail. The first failure aborts and
// is reported with the element index.
func TryMap[T, R any](in []T, fn func(T) (R, error)) ([]R, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]R, len(in))
	for i := range in {
		v, err := fn(in[i])
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Distinct drops repeated values, keeping the first occurrence of each.
func Distinct[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := in[:0:0]
	for _, v := range in {
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
