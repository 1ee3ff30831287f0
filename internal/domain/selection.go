package domain

// Candidates and the chosen least-congested path.
// Scores[i] belongs to Candidates[i]. BestIndex is -1 when there is no best path,
// which happens exactly when Candidates is empty.
type SelectionResult struct {
	Candidates []Path `json:"candidates"`
	Scores     []int  `json:"scores"`
	BestIndex  int    `json:"best_index"`
}

func EmptySelection() SelectionResult {
	return SelectionResult{
		Candidates: []Path{},
		Scores:     []int{},
		BestIndex:  -1,
	}
}

// Best returns the selected path, if any.
func (r SelectionResult) Best() (Path, bool) {
	if r.BestIndex < 0 || r.BestIndex >= len(r.Candidates) {
		return nil, false
	}
	return r.Candidates[r.BestIndex], true
}

// BestScore returns the congestion score of the selected path, if any.
func (r SelectionResult) BestScore() (int, bool) {
	if r.BestIndex < 0 || r.BestIndex >= len(r.Scores) {
		return 0, false
	}
	return r.Scores[r.BestIndex], true
}

func (r SelectionResult) Empty() bool { return len(r.Candidates) == 0 }
