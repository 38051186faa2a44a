package sim

// ActiveSet is the insertion-ordered set of rides currently checked out.
// The order only affects what the visualizer sees, never station state.
type ActiveSet struct {
	order []RideID
	index map[RideID]int
}

// NewActiveSet creates an empty set.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{index: make(map[RideID]int)}
}

// Add inserts id. Adding a present id is a no-op.
func (a *ActiveSet) Add(id RideID) {
	if _, ok := a.index[id]; ok {
		return
	}
	a.index[id] = len(a.order)
	a.order = append(a.order, id)
}

// Remove deletes id if present and reports whether it was.
func (a *ActiveSet) Remove(id RideID) bool {
	i, ok := a.index[id]
	if !ok {
		return false
	}
	copy(a.order[i:], a.order[i+1:])
	a.order = a.order[:len(a.order)-1]
	delete(a.index, id)
	for j := i; j < len(a.order); j++ {
		a.index[a.order[j]] = j
	}
	return true
}

// Contains reports membership.
func (a *ActiveSet) Contains(id RideID) bool {
	_, ok := a.index[id]
	return ok
}

// Len returns the number of active rides.
func (a *ActiveSet) Len() int {
	return len(a.order)
}

// IDs returns a copy of the members in insertion order.
func (a *ActiveSet) IDs() []RideID {
	out := make([]RideID, len(a.order))
	copy(out, a.order)
	return out
}
