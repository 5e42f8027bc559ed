package corrector

// Candidate is a known word offered for a token, or the token itself when
// nothing better was found.
type Candidate struct {
	Term        string  `json:"term"`
	Frequency   int64   `json:"frequency"`
	Distance    int     `json:"distance"`
	Probability float64 `json:"probability"`
}

// CandidateSet is ordered best first: frequency descending, then term
// ascending.
type CandidateSet []Candidate

// Best returns the first candidate.
func (cs CandidateSet) Best() Candidate {
	if len(cs) == 0 {
		return Candidate{}
	}
	return cs[0]
}

// Terms returns at most k terms in order; k <= 0 returns all of them.
func (cs CandidateSet) Terms(k int) []string {
	if k <= 0 || k > len(cs) {
		k = len(cs)
	}
	out := make([]string, k)
	for i := range out {
		out[i] = cs[i].Term
	}
	return out
}

type CorrectionResult struct {
	Original        string                  `json:"original"`
	Corrected       string                  `json:"corrected"`
	OriginalTokens  []string                `json:"original_tokens"`
	CorrectedTokens []string                `json:"corrected_tokens"`
	Misspelled      []string                `json:"misspelled"`
	Candidates      map[string]CandidateSet `json:"candidates"`
}
