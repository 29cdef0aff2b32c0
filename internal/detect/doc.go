// Package detect decides whether a monitored agent process currently needs
// human attention, by interpreting the process's kernel-exposed state.
//
// Each detector evaluates one heuristic against a snapshot of process state
// plus caller-supplied historical context, and produces an optional
// attention reason. Detectors are stateless aside from fixed configuration:
// the historical values they need (previous CPU sample, idle duration) are
// threaded through PollContext by the polling caller, which keeps every
// Check call a pure function of its arguments plus read-only OS state.
//
// # Main Types
//
//   - [AttentionReason]: the verdict, a closed set of reasons with a
//     free-text escape variant
//   - [PollContext]: caller-held per-poll context (pid, previous CPU
//     sample, idle duration)
//   - [Detector]: the single-method heuristic interface
//   - [Registry]: an immutable ordered collection of detectors
//
// # Detectors
//
// Three heuristics exist:
//
//   - [StateDetector]: process in interruptible sleep with stdin on a
//     terminal device, gated by task age and idle duration
//   - [StallDetector]: zero CPU progress between polls past a configurable
//     timeout, gated by task age
//   - [StdinDetector]: lsof-based stdin probe; operationally more expensive
//     (spawns a process per check) and excluded from the default registry
//
// # False-Positive Suppression
//
// Every verdict is double-gated on task age and caller-observed idle time.
// A freshly started process naturally sleeps on stdin and shows zero
// CPU-time delta on its first poll; the age gates keep those from flagging.
//
// # Error Handling
//
// No detector ever returns an error. Any read failure (process exited,
// permission denied, malformed record, tool spawn failure) degrades to
// "no verdict". The worst outcome of any failure is a missed or delayed
// attention signal.
//
// # Basic Usage
//
//	registry := detect.NewDefaultRegistry(procfs.Default())
//
//	reason := registry.Check(task, detect.PollContext{
//	    PID:          task.PID,
//	    LastCheck:    lastCheck,
//	    LastCPUTime:  lastCPU,
//	    IdleDuration: idle,
//	})
//	if reason != nil {
//	    notify(task, reason.String())
//	}
package detect
