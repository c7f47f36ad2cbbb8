package inventory

// HasSpace indica si una estantería con occupied productos admite uno más (occupied < capacity).
func HasSpace(occupied, capacity int) bool {
	return occupied < capacity
}
