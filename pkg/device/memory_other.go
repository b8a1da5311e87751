//go:build !linux

package device

func totalMemory() uint64 {
	return 0
}
