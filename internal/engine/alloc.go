package engine

import (
	"buddy_master/internal/errs"
)

// Alloc 分配至少 size 字节，返回块起始偏移。
// size 先抬到最小块 16B；所需阶超过 maxOrder 返回 ErrTooLarge，
// 找不到空闲块返回 ErrNoSpace。失败不改动任何状态。
func (a *Allocator) Alloc(size uint64) (uint64, error) {
	if a.closed() {
		return 0, errs.ErrClosed
	}
	if size < MinBlockSize {
		size = MinBlockSize
	}
	need := orderForSize(size)
	if need > a.maxOrder {
		return 0, errs.ErrTooLarge
	}

	// 最佳适配：从 need 往上找第一个有空闲块的阶，取下标最小的一块
	have := -1
	var idx uint64
	for o := need; o <= a.maxOrder; o++ {
		if i, ok := a.free.TakeLowestFree(o); ok {
			have, idx = o, i
			break
		}
	}
	if have < 0 {
		return 0, errs.ErrNoSpace
	}

	// 逐级劈半：左孩子继续往下，右伙伴记回空闲位图
	for have > need {
		have--
		idx <<= 1
		a.free.MarkFree(have, idx|1)
	}

	off := a.reg.AddressOf(need, idx)
	a.live.Insert(off, need)
	a.total += blockSize(need)
	return off, nil
}

// Free 归还偏移 off 处的块。
// off 不是存活分配返回 ErrForeign，状态不变；调用方可按需忽略。
// 归还后沿伙伴链向上合并，直到伙伴不空闲或到达整区。
func (a *Allocator) Free(off uint64) error {
	if a.closed() {
		return errs.ErrClosed
	}
	order, ok := a.live.Take(off)
	if !ok {
		return errs.ErrForeign
	}
	a.total -= blockSize(order)

	i := a.reg.Locate(off, order)
	a.free.MarkFree(order, i)
	for order < a.maxOrder && a.free.IsFree(order, i^1) {
		a.free.MarkUsed(order, i)
		a.free.MarkUsed(order, i^1)
		i >>= 1
		order++
		a.free.MarkFree(order, i)
	}
	return nil
}
