// Package gesture translates continuous drag input into discrete edit
// commands. The interpreter is a pure state machine over pixel deltas and
// static layout constants; it never touches the model and never renders,
// so it is unit-testable without simulating pointer events.
package gesture
