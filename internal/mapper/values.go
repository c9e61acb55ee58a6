package mapper

import "time"

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ptr maps "" to NULL.
func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func num(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func count(n *int32) int32 {
	if n == nil {
		return 0
	}
	return *n
}

func stamp(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func list(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
