package bitmap

import (
	"math/bits"
)

// Bitmap 按阶记录空闲块：orders[o] 的第 i 位为 1 表示块 (o, i) 空闲。
// 低于 minOrder 的阶不参与分配，查询一律视为不空闲。
// 位图只维护集合语义，伙伴不变量由上层 engine 保证。
type Bitmap struct {
	minOrder int
	maxOrder int
	orders   [][]uint64 // orders[o-minOrder]，每阶 2^(maxOrder-o) 位
}

// New 创建 [minOrder, maxOrder] 各阶的空位图。
func New(minOrder, maxOrder int) *Bitmap {
	b := &Bitmap{
		minOrder: minOrder,
		maxOrder: maxOrder,
		orders:   make([][]uint64, maxOrder-minOrder+1),
	}
	for o := minOrder; o <= maxOrder; o++ {
		n := uint64(1) << (maxOrder - o) // 该阶块数
		b.orders[o-minOrder] = make([]uint64, (n+63)/64)
	}
	return b
}

func (b *Bitmap) inRange(order int, index uint64) bool {
	if order < b.minOrder || order > b.maxOrder {
		return false
	}
	return index < uint64(1)<<(b.maxOrder-order)
}

// IsFree 判断块 (order, index) 是否空闲，越界返回 false。
func (b *Bitmap) IsFree(order int, index uint64) bool {
	if !b.inRange(order, index) {
		return false
	}
	w := b.orders[order-b.minOrder]
	return w[index>>6]&(1<<(index&63)) != 0
}

// MarkFree 置空闲位，幂等，越界忽略。
func (b *Bitmap) MarkFree(order int, index uint64) {
	if !b.inRange(order, index) {
		return
	}
	b.orders[order-b.minOrder][index>>6] |= 1 << (index & 63)
}

// MarkUsed 清空闲位，幂等，越界忽略。
func (b *Bitmap) MarkUsed(order int, index uint64) {
	if !b.inRange(order, index) {
		return
	}
	b.orders[order-b.minOrder][index>>6] &^= 1 << (index & 63)
}

// TakeLowestFree 取出该阶下标最小的空闲块并清位。
// 逐字扫描 + TrailingZeros64，代价与存活分配数无关。
func (b *Bitmap) TakeLowestFree(order int) (uint64, bool) {
	if order < b.minOrder || order > b.maxOrder {
		return 0, false
	}
	words := b.orders[order-b.minOrder]
	for wi, w := range words {
		if w == 0 {
			continue
		}
		bit := bits.TrailingZeros64(w)
		words[wi] = w &^ (1 << bit)
		return uint64(wi)<<6 + uint64(bit), true
	}
	return 0, false
}

// CountFree 返回该阶空闲块数，越界返回 0。
func (b *Bitmap) CountFree(order int) int {
	if order < b.minOrder || order > b.maxOrder {
		return 0
	}
	n := 0
	for _, w := range b.orders[order-b.minOrder] {
		n += bits.OnesCount64(w)
	}
	return n
}

// RangeFree 遍历该阶全部空闲块下标（升序），f 返回 false 时提前终止。
func (b *Bitmap) RangeFree(order int, f func(index uint64) bool) {
	if order < b.minOrder || order > b.maxOrder {
		return
	}
	for wi, w := range b.orders[order-b.minOrder] {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			if !f(uint64(wi)<<6 + uint64(bit)) {
				return
			}
			w &^= 1 << bit
		}
	}
}
