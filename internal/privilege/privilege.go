package privilege

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DevMem is the physical memory device rpi_ws281x maps its DMA buffers through
const DevMem = "/dev/mem"

// Report describes the privileges of the running process
type Report struct {
	EUID int
	EGID int
	// DevMem is nil when /dev/mem can be opened for read and write
	DevMem error
}

// Root reports whether the process runs with an effective UID of 0
func (r Report) Root() bool {
	return r.EUID == 0
}

// CanDrivePWM reports whether the ws281x driver is likely to start
func (r Report) CanDrivePWM() bool {
	return r.DevMem == nil
}

// Check collects the privilege report for the current process
func Check() Report {
	return Report{
		EUID:   unix.Geteuid(),
		EGID:   unix.Getegid(),
		DevMem: checkAccess(DevMem),
	}
}

// checkAccess tests read/write access the way open(2) would, using the
// effective IDs
func checkAccess(path string) error {
	if err := unix.Faccessat(unix.AT_FDCWD, path, unix.R_OK|unix.W_OK, unix.AT_EACCESS); err != nil {
		if err == unix.EACCES || err == unix.EPERM {
			return fmt.Errorf("%s: %w", path, os.ErrPermission)
		}
		if err == unix.ENOENT {
			return fmt.Errorf("%s: %w", path, os.ErrNotExist)
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
