//go:build unix

package memres

import "golang.org/x/sys/unix"

// defaultInitialBlockSize returns the OS page size as the monotonic
// resource's first-block size hint, rounded up to the spec's 1024-byte
// floor. Using the page size means the first bump-allocator block lines up
// with what the kernel hands back for a single mmap/brk unit instead of
// under-requesting and immediately growing.
func defaultInitialBlockSize() int {
	sz := unix.Getpagesize()
	if sz < minBlockSize {
		return minBlockSize
	}
	return sz
}
