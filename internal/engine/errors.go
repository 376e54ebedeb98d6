package engine

// ProvenanceError reports provenance input that cannot seed a generation run.
// Generation never substitutes a default seed; bad input always surfaces here.
type ProvenanceError struct {
	Reason string
}

func (e *ProvenanceError) Error() string {
	return "invalid provenance: " + e.Reason
}
