// Package monitor owns the polling loop that watches agent processes.
//
// The monitor holds all mutable per-task state between polls: the last
// sampled CPU time and state code, the idle clock, and the last verdict.
// Detectors stay pure; each sweep hands them a task descriptor and a
// PollContext built from this state and reconciles whatever verdict
// comes back. CPU progress or a state-code change resets the idle clock,
// so idle duration measures how long the process has looked inert, not
// how long it has existed.
//
// Status transitions, attention edges, and process exits are published
// on an event bus so the TUI and CLI can react without polling the
// monitor themselves.
package monitor
