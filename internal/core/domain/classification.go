package domain

// ClassificationOutcome is the parsed result of a classification call.
// Category is always non-empty; Confidence is nil when the model did
// not report one or it could not be recovered.
type ClassificationOutcome struct {
	// Category is the label the model assigned.
	Category string

	// Confidence is the model's self-reported confidence in [0,1],
	// when available.
	Confidence *float64
}
