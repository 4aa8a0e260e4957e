// Package geometry models axis-aligned box sizes and the "fits into" and
// "fits over" predicates used to match boxes against a target, including the
// optional sideways rotation of the target's height axis.
package geometry
