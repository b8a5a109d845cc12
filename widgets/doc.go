// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing helpers (palette, panel chrome, buttons, hit-testing on rendered output)
//
// Not allowed here:
// - key handling, machine access, or event dispatch
package widgets
