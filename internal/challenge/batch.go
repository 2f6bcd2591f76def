package challenge

// Provenance records where a batch came from.
type Provenance string

const (
	ProvenanceModel    Provenance = "model"
	ProvenanceFallback Provenance = "fallback"
)

// Label is the short text shown next to the challenge title.
func (p Provenance) Label() string {
	if p == ProvenanceModel {
		return "Generated by AI"
	}
	return "Sample Set"
}

// Batch is an ordered, immutable set of challenges from a single source.
// Accessors return copies so a batch cannot be changed after creation.
type Batch struct {
	challenges []Challenge
	provenance Provenance
}

// NewBatch copies challenges into a new batch.
func NewBatch(challenges []Challenge, provenance Provenance) Batch {
	cs := make([]Challenge, len(challenges))
	for i, c := range challenges {
		cs[i] = c.Clone()
	}
	return Batch{challenges: cs, provenance: provenance}
}

// Len returns the number of challenges.
func (b Batch) Len() int { return len(b.challenges) }

// Provenance returns the batch source.
func (b Batch) Provenance() Provenance { return b.provenance }

// At returns a copy of challenge i. It panics when i is out of range.
func (b Batch) At(i int) Challenge { return b.challenges[i].Clone() }

// Challenges returns a copy of every challenge in order.
func (b Batch) Challenges() []Challenge {
	out := make([]Challenge, len(b.challenges))
	for i, c := range b.challenges {
		out[i] = c.Clone()
	}
	return out
}

// Titles lists challenge titles in order.
func (b Batch) Titles() []string {
	out := make([]string, len(b.challenges))
	for i, c := range b.challenges {
		out[i] = c.Title
	}
	return out
}
