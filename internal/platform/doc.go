package platform

// Package platform contains shared helpers at the edge of the domain: accepted
// URL shape validation, filesystem-safe filename derivation, duration
// formatting, and directory glue used by the entry points.
