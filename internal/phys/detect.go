package phys

import "github.com/san-kum/orbsim/internal/body"

// Contact records an overlapping pair of distinct bodies by registry
// index, A < B. Contacts live only until the step's resolution pass.
type Contact struct {
	A, B int
}

// DetectContacts scans every unique pair against current positions and
// appends a contact for each overlap. Emission order is the pair
// iteration order, which makes the later resolution pass deterministic.
// dst is reused between steps to avoid reallocating the list.
func DetectContacts(reg *body.Registry, dst []Contact) []Contact {
	reg.EachPair(func(i, j int, a, b *body.Body) {
		if overlaps(a, b) {
			dst = append(dst, Contact{A: i, B: j})
		}
	})
	return dst
}

func overlaps(a, b *body.Body) bool {
	return a.Radius+b.Radius-a.Pos.Sub(b.Pos).Len() > 0
}
