// Package preflight checks that a root can take a rewrite before any file
// under it is touched.
package preflight

import (
	"fmt"
	"log/slog"

	"github.com/shirou/gopsutil/v4/disk"
)

// UsageFunc matches disk.Usage.
type UsageFunc func(path string) (*disk.UsageStat, error)

// DiskSpace requires a minimum of free bytes on the file system holding a
// root. Rewrites stage a full copy of each file next to the original.
type DiskSpace struct {
	minFree uint64
	usage   UsageFunc
	logger  *slog.Logger
}

func NewDiskSpace(minFree uint64, logger *slog.Logger) *DiskSpace {
	return &DiskSpace{
		minFree: minFree,
		usage:   disk.Usage,
		logger:  logger,
	}
}

func (d *DiskSpace) Check(root string) error {
	if d.minFree == 0 {
		return nil
	}

	usage, err := d.usage(root)
	if err != nil {
		// Not all file systems report usage; don't block startup on it.
		d.logger.Warn("could not read disk usage, skipping free space check", "root", root, "error", err)
		return nil
	}

	d.logger.Debug("disk usage",
		"root", root,
		"free_bytes", usage.Free,
		"total_bytes", usage.Total,
		"usage_percent", usage.UsedPercent,
	)

	if usage.Free < d.minFree {
		return fmt.Errorf("insufficient free space: %d bytes free, %d required", usage.Free, d.minFree)
	}
	return nil
}
