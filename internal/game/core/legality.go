package core

// Legality is the structured result of a rules legality check. Expected,
// recoverable outcomes are reported here rather than as errors so callers
// can branch on them.
type Legality struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Allow returns a permitting result.
func Allow() Legality {
	return Legality{Allowed: true}
}

// Deny returns a refusing result with the given reason.
func Deny(reason string) Legality {
	return Legality{Allowed: false, Reason: reason}
}
