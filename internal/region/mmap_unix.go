//go:build unix

package region

import (
	"golang.org/x/sys/unix"
)

// reserve 以匿名私有映射申请 size 字节可读写内存。
func reserve(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// release 解除映射。
func release(data []byte) error {
	return unix.Munmap(data)
}
