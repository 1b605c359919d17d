package buddy_master

import (
	"unsafe"

	"buddy_master/internal/engine"
	"buddy_master/internal/errs"
)

// 对外暴露的 sentinel errors，便于调用方 errors.Is。
var (
	ErrNoSpace  = errs.ErrNoSpace
	ErrTooLarge = errs.ErrTooLarge
	ErrForeign  = errs.ErrForeign
	ErrClosed   = errs.ErrClosed
	ErrBadOrder = errs.ErrBadOrder
	ErrBadSize  = errs.ErrBadSize
)

// MinBlockSize 最小分配粒度（字节），不足该值的请求按此抬齐。
const MinBlockSize = int(engine.MinBlockSize)

// Allocator 固定容量伙伴分配器。区大小 2^maxOrder 字节，块大小均为二的幂，
// 归还时与伙伴块自动合并。返回的切片是对区内内存的借用，Free 前调用方独占，
// 内容不清零。分配器不做内部同步，多 goroutine 使用需外部串行化。
type Allocator struct {
	e *engine.Allocator
}

// New 创建 2^maxOrder 字节的分配器，maxOrder 须 >= 4。
func New(maxOrder int) (*Allocator, error) {
	e, err := engine.New(maxOrder)
	if err != nil {
		return nil, err
	}
	return &Allocator{e: e}, nil
}

// Close 释放整个区，未归还的借用随之失效。
func (a *Allocator) Close() error {
	if a == nil || a.e == nil {
		return nil
	}
	return a.e.Close()
}

// Alloc 分配 n 字节，返回 len=n 的切片，cap 为实际块大小。
// n 为 0 也是合法请求，得到一个最小块。
// Free 时须传回本方法返回的原切片（不要先 reslice 前移）。
func (a *Allocator) Alloc(n int) ([]byte, error) {
	if a == nil || a.e == nil {
		return nil, ErrClosed
	}
	if n < 0 {
		return nil, ErrBadSize
	}
	off, err := a.e.Alloc(uint64(n))
	if err != nil {
		return nil, err
	}
	order, _ := a.e.OrderOf(off)
	data := a.e.Data()
	return data[off : off+uint64(n) : off+uint64(1)<<order], nil
}

// Free 归还 Alloc 返回的切片。nil 或零容量切片是 no-op；
// 不属于本分配器的切片返回 ErrForeign，状态不变。
func (a *Allocator) Free(buf []byte) error {
	if a == nil || a.e == nil {
		return ErrClosed
	}
	if cap(buf) == 0 {
		return nil
	}
	data := a.e.Data()
	if data == nil {
		return ErrClosed
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	if p < base || p >= base+uintptr(len(data)) {
		return ErrForeign
	}
	return a.e.Free(uint64(p - base))
}

// AllocOffset 偏移形式的分配，供自己记偏移的调用方使用。
func (a *Allocator) AllocOffset(n int) (uint64, error) {
	if a == nil || a.e == nil {
		return 0, ErrClosed
	}
	if n < 0 {
		return 0, ErrBadSize
	}
	return a.e.Alloc(uint64(n))
}

// FreeOffset 按偏移归还。
func (a *Allocator) FreeOffset(off uint64) error {
	if a == nil || a.e == nil {
		return ErrClosed
	}
	return a.e.Free(off)
}

// Bytes 返回存活偏移 off 对应的整块切片，off 不是存活分配返回 false。
func (a *Allocator) Bytes(off uint64) ([]byte, bool) {
	if a == nil || a.e == nil {
		return nil, false
	}
	order, ok := a.e.OrderOf(off)
	if !ok {
		return nil, false
	}
	data := a.e.Data()
	if data == nil {
		return nil, false
	}
	return data[off : off+uint64(1)<<order : off+uint64(1)<<order], true
}

// TotalAllocated 返回存活借用的字节总数（按块大小计）。
func (a *Allocator) TotalAllocated() uint64 {
	if a == nil || a.e == nil {
		return 0
	}
	return a.e.TotalAllocated()
}

// Size 返回区容量（字节）。
func (a *Allocator) Size() uint64 {
	if a == nil || a.e == nil {
		return 0
	}
	return a.e.Size()
}

// MaxOrder 返回区容量的阶。
func (a *Allocator) MaxOrder() int {
	if a == nil || a.e == nil {
		return 0
	}
	return a.e.MaxOrder()
}

// Live 返回存活借用数。
func (a *Allocator) Live() int {
	if a == nil || a.e == nil {
		return 0
	}
	return a.e.Live()
}

// FreeByOrder 返回各阶空闲块数快照，下标即阶。
func (a *Allocator) FreeByOrder() []int {
	if a == nil || a.e == nil {
		return nil
	}
	return a.e.FreeByOrder()
}
