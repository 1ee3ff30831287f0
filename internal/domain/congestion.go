package domain

// CongestionLabel classifies the traffic at a sampled point.
type CongestionLabel string

const (
	LabelLow    CongestionLabel = "low"
	LabelHigh   CongestionLabel = "high"
	LabelNoData CongestionLabel = "no_data"
)

// A current speed above this share of free-flow speed counts as low congestion.
const FreeFlowRatio = 0.7

// CongestionSample is derived on demand from the traffic source and never cached.
// Speeds are nil when the label is LabelNoData.
type CongestionSample struct {
	CurrentSpeed  *float64        `json:"current_speed"`
	FreeFlowSpeed *float64        `json:"free_flow_speed"`
	Label         CongestionLabel `json:"label"`
}

// ClassifySpeeds labels a (current, free-flow) speed pair.
func ClassifySpeeds(current, freeFlow float64) CongestionSample {
	label := LabelHigh
	if current > FreeFlowRatio*freeFlow {
		label = LabelLow
	}
	return CongestionSample{
		CurrentSpeed:  &current,
		FreeFlowSpeed: &freeFlow,
		Label:         label,
	}
}

// NoDataSample is the neutral sample used when the traffic source has nothing usable.
func NoDataSample() CongestionSample {
	return CongestionSample{Label: LabelNoData}
}

// Score is the contribution of a single segment to a path's congestion score.
func (s CongestionSample) Score() int {
	if s.Label == LabelHigh {
		return 1
	}
	return 0
}
