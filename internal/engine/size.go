package engine

import "math/bits"

const (
	// MinOrder 最小分配粒度的阶：2^4 = 16 字节。
	MinOrder = 4
	// MinBlockSize 最小块大小（字节）。
	MinBlockSize = uint64(1) << MinOrder
)

// orderForSize 返回能容纳 size 的最小阶，size 须 >= 1。
// 直接按位算出上取整的 log2，不做逐阶试探，超界与否由调用方对照 maxOrder 判断。
func orderForSize(size uint64) int {
	if size <= MinBlockSize {
		return MinOrder
	}
	return bits.Len64(size - 1)
}

// blockSize 返回 order 阶块的字节数。
func blockSize(order int) uint64 {
	return uint64(1) << order
}
