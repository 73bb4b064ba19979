//go:build windows

package storage

import (
	"os"
)

// flockAcquire acquires an exclusive lock on the file (Windows
// implementation). The lock is implicit through file handle exclusivity.
func flockAcquire(file *os.File) error {
	return nil
}

// flockRelease releases the lock on the file (Windows implementation).
func flockRelease(file *os.File) error {
	return nil
}

// isProcessRunning checks if a process with the given PID is still running.
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	process.Release()
	return true
}
