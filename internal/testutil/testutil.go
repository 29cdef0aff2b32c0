// Package testutil provides testing utilities for agent-notifications tests.
package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/creack/pty"
)

// ProcTree builds a proc-style fixture directory for procfs tests.
// Entries are created under a temp dir that is cleaned up with the test.
type ProcTree struct {
	// Root is the fixture directory, suitable for procfs.NewFS.
	Root string

	t *testing.T
}

// NewProcTree creates an empty proc fixture tree.
func NewProcTree(t *testing.T) *ProcTree {
	t.Helper()
	return &ProcTree{Root: t.TempDir(), t: t}
}

// WriteStat writes a raw stat record for the given pid.
func (p *ProcTree) WriteStat(pid int, record string) {
	p.t.Helper()

	dir := filepath.Join(p.Root, strconv.Itoa(pid))
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.t.Fatalf("failed to create proc dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stat"), []byte(record), 0644); err != nil {
		p.t.Fatalf("failed to write stat record: %v", err)
	}
}

// WriteStatFields writes a well-formed stat record with the given state
// code and CPU times, padding the remaining fields with zeros.
func (p *ProcTree) WriteStatFields(pid int, state byte, utime, stime uint64) {
	p.t.Helper()

	record := fmt.Sprintf("%d (agent) %c 1 %d %d 0 -1 4194304 0 0 0 0 %d %d 0 0 20 0 1 0 0 0 0",
		pid, state, pid, pid, utime, stime)
	p.WriteStat(pid, record)
}

// LinkFD creates a file descriptor symlink for the given pid pointing at
// target. The target does not need to exist.
func (p *ProcTree) LinkFD(pid, fd int, target string) {
	p.t.Helper()

	dir := filepath.Join(p.Root, strconv.Itoa(pid), "fd")
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.t.Fatalf("failed to create fd dir: %v", err)
	}
	link := filepath.Join(dir, strconv.Itoa(fd))
	if err := os.Symlink(target, link); err != nil {
		p.t.Fatalf("failed to create fd symlink: %v", err)
	}
}

// RequireProcFS skips the test unless the real /proc filesystem is present
// (i.e. on Linux). Integration tests that inspect live processes use this.
func RequireProcFS(t *testing.T) {
	t.Helper()

	if _, err := os.Stat("/proc/self/stat"); err != nil {
		t.Skipf("skipping: /proc not available on this platform: %v", err)
	}
}

// StartPtyProcess starts the given command attached to a pseudo-terminal
// so its stdin resolves to a pty device, and returns its pid. The process
// is killed and reaped when the test finishes.
func StartPtyProcess(t *testing.T, name string, args ...string) int {
	t.Helper()

	cmd := exec.Command(name, args...)
	f, err := pty.Start(cmd)
	if err != nil {
		t.Skipf("skipping: cannot start pty process: %v", err)
	}

	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
		_ = f.Close()
	})

	return cmd.Process.Pid
}
