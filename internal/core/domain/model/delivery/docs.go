// Package delivery provides the Delivery aggregate root: the validated
// status state machine, lifecycle timestamps, courier assignment, the public
// tracking token, the capped location history, and the rating/tip rules.
//
// Every status change, whether operator-, courier-, or tracker-initiated,
// goes through the same transition table, so no surface can skip a lifecycle
// step or resurrect a terminal delivery.
//
// The package follows Domain-Driven Design principles: private fields,
// validated constructors, and behavior methods that preserve the invariants.
package delivery
