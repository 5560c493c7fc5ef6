package engine

// Membership is the read-only identifier lookup a filter consults.
type Membership interface {
	Contains(id string) bool
}

// ShouldEmit is the per-record decision: membership, flipped by invert.
func ShouldEmit(set Membership, invert bool, id string) bool {
	return set.Contains(id) != invert
}
