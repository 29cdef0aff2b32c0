// Package procfs provides read-only access to the kernel-exposed state of
// a monitored process: its stat record (scheduling state and CPU accounting)
// and its file descriptor table entries.
//
// The package deliberately interprets as little as possible. It parses the
// stat record by the published field positions (field 3 = state, fields
// 14/15 = utime/stime) and resolves descriptor symlinks verbatim; deciding
// what a state code or a descriptor target *means* belongs to the detect
// package.
//
// # Main Types
//
//   - [Reader]: the interface detectors consume, enabling fake filesystems
//     in tests
//   - [FS]: the real implementation rooted at /proc (or any directory with
//     the same layout)
//   - [Snapshot]: an ephemeral parse of one stat record
//
// # Error Handling
//
// All failures map to sentinels in the errors package: a missing process
// directory is ErrProcessNotFound, an unreadable record is ErrStatUnreadable,
// a short or non-numeric record is ErrMalformedStat, and an unresolvable
// descriptor is ErrFDUnavailable. Callers in the detection path treat any
// of these as "no data", never as a fault.
package procfs
