package engine

import (
	"buddy_master/internal/bitmap"
	"buddy_master/internal/errs"
	"buddy_master/internal/region"
	"buddy_master/internal/table"
)

// Allocator 伙伴分配器：2^maxOrder 字节的 Region 按二的幂切块，
// 空闲块记在按阶位图里，存活分配记在 offset->order 表里。
// 不做内部同步，并发调用方自行加锁。
type Allocator struct {
	maxOrder int
	reg      *region.Region
	free     *bitmap.Bitmap
	live     *table.Table
	total    uint64 // 存活分配的块大小之和
}

// New 创建 maxOrder 阶的分配器，区大小 2^maxOrder 字节。
// maxOrder 须 >= MinOrder；Region 申请失败原样上抛。
// 初始只有整区一块 (maxOrder, 0) 空闲。
func New(maxOrder int) (*Allocator, error) {
	if maxOrder < MinOrder || maxOrder > 62 {
		return nil, errs.ErrBadOrder
	}
	reg, err := region.Reserve(uint64(1) << maxOrder)
	if err != nil {
		return nil, err
	}
	a := &Allocator{
		maxOrder: maxOrder,
		reg:      reg,
		free:     bitmap.New(MinOrder, maxOrder),
		live:     table.New(),
	}
	a.free.MarkFree(maxOrder, 0)
	return a, nil
}

func (a *Allocator) closed() bool {
	return a.reg == nil || a.reg.Data() == nil
}

// Data 返回底层字节区，Close 后为 nil。
func (a *Allocator) Data() []byte {
	if a.reg == nil {
		return nil
	}
	return a.reg.Data()
}

// MaxOrder 返回区大小的阶。
func (a *Allocator) MaxOrder() int { return a.maxOrder }

// Size 返回区容量（字节）。
func (a *Allocator) Size() uint64 { return uint64(1) << a.maxOrder }

// TotalAllocated 返回存活分配的字节总数（按块大小计）。
func (a *Allocator) TotalAllocated() uint64 { return a.total }

// Live 返回存活分配数。
func (a *Allocator) Live() int { return a.live.Len() }

// OrderOf 返回存活偏移 off 发放时的阶。
func (a *Allocator) OrderOf(off uint64) (int, bool) {
	return a.live.Get(off)
}

// FreeByOrder 返回各阶空闲块数快照，下标即阶，len = maxOrder+1。
func (a *Allocator) FreeByOrder() []int {
	counts := make([]int, a.maxOrder+1)
	for o := MinOrder; o <= a.maxOrder; o++ {
		counts[o] = a.free.CountFree(o)
	}
	return counts
}

// FreeAt 遍历 order 阶的空闲块下标（升序），供观测与测试。
func (a *Allocator) FreeAt(order int, f func(index uint64) bool) {
	a.free.RangeFree(order, f)
}

// RangeLive 遍历存活分配 (off, order)。
func (a *Allocator) RangeLive(f func(off uint64, order int) bool) {
	a.live.Range(f)
}

// Close 释放 Region，未归还的偏移随之失效。
func (a *Allocator) Close() error {
	if a.reg == nil {
		return nil
	}
	return a.reg.Close()
}
