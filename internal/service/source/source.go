// internal/service/source/source.go

package source

// Outcome records whether an adapter served live or substitute data for a
// fetch. Adapters never surface errors to their callers; the outcome
// keeps fallback usage observable in logs and tests while the external
// contract stays a single well-shaped result.
type Outcome struct {
	Live   bool
	Reason string
}

func live() Outcome {
	return Outcome{Live: true}
}

func fallback(reason string) Outcome {
	return Outcome{Reason: reason}
}
