package utils

// Keep returns the elements of xs for which keep is true, in order. xs is
// never modified.
func Keep[T any](xs []T, keep func(T) bool) []T {
	var out []T
	for _, x := range xs {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

// Contains reports whether x appears in xs.
func Contains[T comparable](xs []T, x T) bool {
	for i := range xs {
		if xs[i] == x {
			return true
		}
	}
	return false
}

// Tail returns a copy of the last n elements of xs (all of xs when n <= 0 or
// n >= len(xs)).
func Tail[T any](xs []T, n int) []T {
	if n <= 0 || n >= len(xs) {
		return append([]T(nil), xs...)
	}
	return append([]T(nil), xs[len(xs)-n:]...)
}

// Index returns 0..n-1 as float64, used as the time axis of single-device views.
func Index(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
