package domain

// Path is an ordered sequence of node ids from a start node to an end node.
type Path []NodeID

// Segment is one consecutive node pair along a path.
type Segment struct {
	From NodeID
	To   NodeID
}

func (p Path) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(p)-1)
	for i := 0; i+1 < len(p); i++ {
		out = append(out, Segment{From: p[i], To: p[i+1]})
	}
	return out
}

// EdgeCount is the number of segments in the path.
func (p Path) EdgeCount() int {
	if len(p) < 2 {
		return 0
	}
	return len(p) - 1
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
