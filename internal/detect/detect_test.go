package detect

import (
	"time"

	"github.com/adlrocha/agent-notifications/internal/errors"
	"github.com/adlrocha/agent-notifications/internal/procfs"
	"github.com/adlrocha/agent-notifications/internal/task"
)

// fakeFS is a canned procfs.Reader for detector tests.
type fakeFS struct {
	snap    procfs.Snapshot
	statErr error

	fdTarget string
	fdErr    error
}

func (f *fakeFS) Stat(pid int) (procfs.Snapshot, error) {
	if f.statErr != nil {
		return procfs.Snapshot{}, f.statErr
	}
	return f.snap, nil
}

func (f *fakeFS) FDTarget(pid, fd int) (string, error) {
	if f.fdErr != nil {
		return "", f.fdErr
	}
	return f.fdTarget, nil
}

// sleepingOnPty returns a reader describing a process in interruptible
// sleep with stdin connected to a pty.
func sleepingOnPty() *fakeFS {
	return &fakeFS{
		snap:     procfs.Snapshot{State: 'S', UTime: 100, STime: 50},
		fdTarget: "/dev/pts/3",
	}
}

// goneFS returns a reader for a process that has exited.
func goneFS() *fakeFS {
	gone := errors.NewProcessError("process has exited", errors.ErrProcessNotFound)
	return &fakeFS{statErr: gone, fdErr: gone}
}

// taskAged returns a running task created age ago.
func taskAged(age time.Duration) *task.Task {
	return &task.Task{
		ID:        "task-1",
		PID:       4242,
		CreatedAt: time.Now().Add(-age),
		Status:    task.StatusRunning,
	}
}

// ctxWith builds a PollContext for pid 4242.
func ctxWith(lastCPU *uint64, idle time.Duration) PollContext {
	return PollContext{
		PID:          4242,
		LastCheck:    time.Now(),
		LastCPUTime:  lastCPU,
		IdleDuration: idle,
	}
}

func cpu(v uint64) *uint64 {
	return &v
}
