// Package phys implements the per-step physics passes for a population
// of spherical bodies: motion integration, pairwise Newtonian gravity,
// overlap detection, and elastic contact resolution.
//
// A [Pipeline] runs the passes in a fixed order each step:
//
//	Integrate -> DetectContacts -> ApplyGravity -> ResolveContacts
//
// Detection reads the positions produced by this step's integration and
// is independent of the gravity pass; resolution runs last so it
// observes gravity-updated velocities. Contact lists are rebuilt every
// step and drained within the step; a pair still overlapping next step
// simply produces a new contact.
//
// The two pairwise passes are O(n²) and dominate runtime. When
// [Pipeline.Workers] is above one they fan out across row ranges of the
// pair space; results are identical to the sequential passes.
package phys
