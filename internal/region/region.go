package region

import (
	"fmt"
)

// Region 固定容量的连续字节区，地址以区内偏移表示。
// 生命周期内底层 buffer 不会搬动；Close 后 data 为 nil。
type Region struct {
	data []byte
	size uint64
}

// Reserve 申请 size 字节的 Region。失败即初始化失败，包装底层错误后上抛。
func Reserve(size uint64) (*Region, error) {
	data, err := reserve(int(size))
	if err != nil {
		return nil, fmt.Errorf("region: reserve %d bytes: %w", size, err)
	}
	return &Region{data: data, size: size}, nil
}

// Data 返回底层字节区，Close 后返回 nil。
func (r *Region) Data() []byte { return r.data }

// Size 返回容量（字节）。
func (r *Region) Size() uint64 { return r.size }

// AddressOf 返回块 (order, index) 的起始偏移：index * 2^order。
func (r *Region) AddressOf(order int, index uint64) uint64 {
	return index << order
}

// Locate 返回偏移 off 在 order 阶上的块下标：off / 2^order。
// 只对 Valid 的 (off, order) 有意义。
func (r *Region) Locate(off uint64, order int) uint64 {
	return off >> order
}

// Valid 判断 off 是否为 order 阶上一个区内块的起始偏移。
func (r *Region) Valid(off uint64, order int) bool {
	if off >= r.size {
		return false
	}
	return off&((uint64(1)<<order)-1) == 0
}

// Close 释放字节区。
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	err := release(r.data)
	r.data = nil
	return err
}
