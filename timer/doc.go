// Package timer defines the scheduling contract used by throttled signals and
// provides a real implementation, a manually advanced one for tests, and a
// repeating ticker for host programs.
package timer
