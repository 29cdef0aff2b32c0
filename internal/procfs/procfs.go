package procfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adlrocha/agent-notifications/internal/errors"
)

// Stat record field positions (1-based, per proc(5)).
// The record is treated as a plain whitespace-separated token list.
const (
	statFieldState = 3
	statFieldUTime = 14
	statFieldSTime = 15
)

// StateInterruptibleSleep is the stat state code for a process blocked in
// an interruptible sleep. It is the only state code the detection layer
// interprets.
const StateInterruptibleSleep = 'S'

// Snapshot is an ephemeral parse of one process stat record. It is
// constructed at the moment of a check and discarded after interpretation;
// only the combined CPU time is carried across polls, and that by the
// caller.
type Snapshot struct {
	// State is the one-character scheduling state code (field 3).
	State byte

	// UTime is user-mode CPU time in platform-native ticks (field 14).
	UTime uint64

	// STime is kernel-mode CPU time in platform-native ticks (field 15).
	STime uint64
}

// CPUTime returns the combined user+kernel CPU time in ticks. It is
// monotonically non-decreasing for a live process and is only meaningful
// for equality comparison across polls; tick-rate normalization is out of
// scope.
func (s Snapshot) CPUTime() uint64 {
	return s.UTime + s.STime
}

// Reader is the read-only process inspection surface the detectors consume.
// Implementations must be safe for concurrent use.
type Reader interface {
	// Stat reads and parses the process's stat record.
	// Returns ErrProcessNotFound if the process has exited,
	// ErrStatUnreadable if the record cannot be read, and
	// ErrMalformedStat if it cannot be parsed.
	Stat(pid int) (Snapshot, error)

	// FDTarget resolves what the given file descriptor points to
	// (the symlink target of the descriptor table entry).
	// Returns ErrFDUnavailable if the descriptor cannot be resolved.
	FDTarget(pid, fd int) (string, error)
}

// FS reads process state from a proc-style directory tree.
// The zero value is not usable; use NewFS or Default.
type FS struct {
	root string
}

// DefaultRoot is the mount point of the process pseudo-filesystem on Linux.
const DefaultRoot = "/proc"

// NewFS creates an FS rooted at the given directory. Tests point this at a
// fixture tree; production callers use Default.
func NewFS(root string) *FS {
	return &FS{root: root}
}

// Default returns an FS reading from /proc.
func Default() *FS {
	return NewFS(DefaultRoot)
}

// Root returns the root directory this FS reads from.
func (fs *FS) Root() string {
	return fs.root
}

// Stat reads and parses the stat record for the given process.
func (fs *FS) Stat(pid int) (Snapshot, error) {
	path := filepath.Join(fs.root, strconv.Itoa(pid), "stat")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, errors.NewProcessError("process has exited", errors.ErrProcessNotFound).
				WithPID(pid).WithPath(path)
		}
		return Snapshot{}, errors.NewProcessError(fmt.Sprintf("read failed: %v", err), errors.ErrStatUnreadable).
			WithPID(pid).WithPath(path)
	}

	snap, err := parseStat(data)
	if err != nil {
		return Snapshot{}, errors.NewProcessError(err.Error(), errors.ErrMalformedStat).
			WithPID(pid).WithPath(path)
	}
	return snap, nil
}

// parseStat parses a stat record as a whitespace-separated token list.
// A record with fewer tokens than the highest field we read, or with
// non-numeric CPU fields, is malformed; the caller reports "no data"
// rather than a fault.
func parseStat(data []byte) (Snapshot, error) {
	fields := strings.Fields(string(data))
	if len(fields) < statFieldSTime {
		return Snapshot{}, fmt.Errorf("expected at least %d fields, got %d", statFieldSTime, len(fields))
	}

	state := fields[statFieldState-1]
	if state == "" {
		return Snapshot{}, fmt.Errorf("empty state field")
	}

	utime, err := strconv.ParseUint(fields[statFieldUTime-1], 10, 64)
	if err != nil {
		return Snapshot{}, fmt.Errorf("invalid utime field %q", fields[statFieldUTime-1])
	}
	stime, err := strconv.ParseUint(fields[statFieldSTime-1], 10, 64)
	if err != nil {
		return Snapshot{}, fmt.Errorf("invalid stime field %q", fields[statFieldSTime-1])
	}

	return Snapshot{
		State: state[0],
		UTime: utime,
		STime: stime,
	}, nil
}

// FDTarget resolves the symlink target of a process's file descriptor
// table entry. The target is returned verbatim (e.g. "/dev/pts/3",
// "pipe:[12345]", "/tmp/out.log").
func (fs *FS) FDTarget(pid, fd int) (string, error) {
	path := filepath.Join(fs.root, strconv.Itoa(pid), "fd", strconv.Itoa(fd))

	target, err := os.Readlink(path)
	if err != nil {
		return "", errors.NewProcessError(fmt.Sprintf("readlink failed: %v", err), errors.ErrFDUnavailable).
			WithPID(pid).WithPath(path)
	}
	return target, nil
}

// Alive reports whether the process still has a stat record. A parse
// failure still counts as alive: the process exists even if its record
// is garbled.
func (fs *FS) Alive(pid int) bool {
	_, err := fs.Stat(pid)
	return err == nil || !errors.IsProcessGone(err)
}
