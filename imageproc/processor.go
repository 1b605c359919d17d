package imageproc

import (
	"errors"
	"fmt"
)

var (
	ErrNoImage  = errors.New("imageproc: no image loaded")
	ErrBadParam = errors.New("imageproc: bad parameter")
)

// Processor 持有一帧交错存储的图像（w*h*c 字节），变换时通过 Memory
// 申请替换 buffer，旧 buffer 算完再归还，峰值驻留两帧。
type Processor struct {
	mem  Memory
	data []byte
	w, h int
	c    int // 每像素通道数，3=RGB 4=RGBA
}

// New 创建处理器，mem 为 nil 时用堆。
func New(mem Memory) *Processor {
	if mem == nil {
		mem = HeapMemory{}
	}
	return &Processor{mem: mem}
}

// Info 返回当前帧的宽、高、通道数。
func (p *Processor) Info() (w, h, c int) {
	return p.w, p.h, p.c
}

// Data 返回当前帧字节区（只读视角，供测试断言）。
func (p *Processor) Data() []byte { return p.data }

// SetFrame 用原始像素装入一帧：len(pix) 须等于 w*h*c。
func (p *Processor) SetFrame(w, h, c int, pix []byte) error {
	if w <= 0 || h <= 0 || (c != 3 && c != 4) {
		return ErrBadParam
	}
	if len(pix) != w*h*c {
		return fmt.Errorf("%w: pixel length %d, want %d", ErrBadParam, len(pix), w*h*c)
	}
	buf, err := p.mem.Alloc(w * h * c)
	if err != nil {
		return err
	}
	copy(buf, pix)
	p.drop()
	p.data, p.w, p.h, p.c = buf, w, h, c
	return nil
}

// Close 归还当前帧。
func (p *Processor) Close() error {
	return p.drop()
}

// drop 归还当前帧 buffer 并清状态。
func (p *Processor) drop() error {
	if p.data == nil {
		return nil
	}
	err := p.mem.Free(p.data)
	p.data = nil
	p.w, p.h, p.c = 0, 0, 0
	return err
}

// pixel 读坐标 (x, y) 通道 ch，越界坐标夹到边缘。
func pixel(data []byte, w, h, c, x, y, ch int) byte {
	if x < 0 {
		x = 0
	}
	if x >= w {
		x = w - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= h {
		y = h - 1
	}
	return data[(y*w+x)*c+ch]
}

// setPixel 写坐标 (x, y) 通道 ch，越界忽略。
func setPixel(data []byte, w, h, c, x, y, ch int, v byte) {
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	data[(y*w+x)*c+ch] = v
}

// bilinear 对浮点坐标 (x, y) 通道 ch 做双线性插值。
func bilinear(data []byte, w, h, c int, x, y float64, ch int) byte {
	x1, y1 := int(x), int(y)
	x2, y2 := x1+1, y1+1
	xf, yf := x-float64(x1), y-float64(y1)

	p1 := float64(pixel(data, w, h, c, x1, y1, ch))
	p2 := float64(pixel(data, w, h, c, x2, y1, ch))
	p3 := float64(pixel(data, w, h, c, x1, y2, ch))
	p4 := float64(pixel(data, w, h, c, x2, y2, ch))

	top := p1*(1-xf) + p2*xf
	bottom := p3*(1-xf) + p4*xf
	return byte(top*(1-yf) + bottom*yf)
}
