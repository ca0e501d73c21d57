// internal/solver/similar.go
//
// Detects strict sets whose members differ in a single slot.

package solver

// NearlyCollapsed reports whether the members of strict differ in at most
// one letter position, using the first member as reference. An empty set
// is not collapsed.
func NearlyCollapsed(strict *Set) bool {
	ref, ok := strict.First()
	if !ok {
		return false
	}
	diff := 0
	for i := 0; i < len(ref) && diff < 2; i++ {
		for w := range strict.All() {
			if w[i] != ref[i] {
				diff++
				break
			}
		}
	}
	return diff <= 1
}
