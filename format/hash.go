package format

import "fmt"

// sprintStable renders v into a string suitable for hashing. %#v on a
// struct of comparable fields (strings, ints, bools) is deterministic across
// calls within one process, which is all computeHash needs.
func sprintStable(v any) string {
	return fmt.Sprintf("%#v", v)
}
