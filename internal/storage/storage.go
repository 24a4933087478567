// Package storage checks whether the runtime data root looks fit for a
// production install. Failing the check is never fatal; it only arms the
// operator warning.
package storage

import (
	"fmt"
	"os"

	"preflight/pkg/logging"

	"golang.org/x/sys/unix"
)

const storageSubsystem = "Storage"

// statfs is a variable to allow mocking in tests.
var statfs = unix.Statfs

// Check describes the capacity check for one data root.
type Check struct {
	// DataRoot is the directory the container runtime stores data under.
	DataRoot string
	// MinFreeGB is the free-space floor below which the configuration is
	// considered non-production.
	MinFreeGB int
}

// Result is the outcome of a storage check.
type Result struct {
	// ProductionReady is false when the warning should be shown.
	ProductionReady bool
	// Detail explains a non-ready result to the operator.
	Detail string
}

// Run evaluates the check. A data root that does not exist yet (fresh
// host, runtime not installed) is checked at its nearest existing parent
// via the filesystem root.
func (c Check) Run() Result {
	path := c.DataRoot
	if _, err := os.Stat(path); err != nil {
		// The runtime will create it on first start; judge the filesystem
		// it would land on.
		path = "/"
	}

	var st unix.Statfs_t
	if err := statfs(path, &st); err != nil {
		logging.Warn(storageSubsystem, "Could not statfs %s: %v", path, err)
		return Result{ProductionReady: true}
	}

	freeBytes := st.Bavail * uint64(st.Bsize)
	freeGB := freeBytes / (1 << 30)
	logging.Debug(storageSubsystem, "%s has %d GiB free", path, freeGB)

	if freeGB < uint64(c.MinFreeGB) {
		return Result{
			ProductionReady: false,
			Detail: fmt.Sprintf("%s has only %d GiB free (%d GiB recommended); this storage configuration is not production ready",
				path, freeGB, c.MinFreeGB),
		}
	}
	return Result{ProductionReady: true}
}
