//go:build linux

package device

import "golang.org/x/sys/unix"

// totalMemory 物理内存字节数，未知时为 0
func totalMemory() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	return uint64(info.Totalram) * uint64(info.Unit)
}
