package scratch

// Package scratch owns the shared scratch directory: short-lived files written
// by request-time tooling, evicted by a periodic age-based sweep that runs off
// the request path.
