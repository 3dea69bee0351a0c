package confidence

import (
	"fmt"
	"math"

	"marksweep/internal/errors"
)

// EvidenceKind identifies the signal family a piece of evidence came from.
type EvidenceKind string

const (
	// KindExplicitMarker is a completion indicator in or next to the marker
	// itself (checked box, checkmark, strikethrough, "done").
	KindExplicitMarker EvidenceKind = "explicit-marker"
	// KindArchivePath is a file path that denotes historical content.
	KindArchivePath EvidenceKind = "archive-path"
	// KindContextKeyword is shipped-status language near the marker.
	KindContextKeyword EvidenceKind = "context-keyword"
	// KindDocumentHeader is obsolescence metadata at the top of the document.
	KindDocumentHeader EvidenceKind = "document-header"
	// KindStaleFile is a file unmodified for longer than the staleness window.
	KindStaleFile EvidenceKind = "stale-file"
)

// Evidence is one typed, weighted fact supporting a completion hypothesis.
// It is a value type; several pieces of the same kind may exist for one
// marker and the aggregator decides how repeats combine.
type Evidence struct {
	Kind        EvidenceKind `json:"kind"`
	Weight      float64      `json:"weight"`
	Description string       `json:"description"`
}

// NewEvidence constructs evidence, rejecting weights the aggregator cannot
// handle. Bad weights are a bug in an extractor; they are caught here so the
// aggregator never sees NaN or negative input.
func NewEvidence(kind EvidenceKind, weight float64, description string) (Evidence, error) {
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return Evidence{}, errors.New(errors.EvidenceInvalid,
			fmt.Sprintf("evidence weight for %s is not finite", kind), nil)
	}
	if weight <= 0 || weight > 1 {
		return Evidence{}, errors.New(errors.EvidenceInvalid,
			fmt.Sprintf("evidence weight %.3f for %s is outside (0, 1]", weight, kind), nil)
	}
	return Evidence{Kind: kind, Weight: weight, Description: description}, nil
}

// MustEvidence is NewEvidence for weights that are known constants.
// It panics on invalid input and is only used with configuration that has
// already passed validation.
func MustEvidence(kind EvidenceKind, weight float64, description string) Evidence {
	ev, err := NewEvidence(kind, weight, description)
	if err != nil {
		panic(err)
	}
	return ev
}
