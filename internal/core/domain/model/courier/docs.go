// Package courier provides the Courier aggregate root for the dispatch
// engine: availability status, vehicle class, last reported position, the
// 0..1 active-delivery reference, completion counters, and the running
// average rating.
//
// Key business rules:
//   - an active delivery implies busy status; available implies no delivery
//   - busy is entered only through assignment and left only through
//     completion or release
//   - completed deliveries increment counters, aborted ones do not
//
// The package follows Domain-Driven Design principles: private fields,
// validated constructors, and behavior methods that preserve the invariants.
package courier
