package imageproc

import (
	"math"
)

// Rotate 绕中心旋转 angle 度。画布放大到对角线见方以完整容纳，
// 逆映射回原图坐标做双线性插值，空白处保持 0。
func (p *Processor) Rotate(angle float64) error {
	if p.data == nil {
		return ErrNoImage
	}
	radians := angle * math.Pi / 180
	cosA, sinA := math.Cos(radians), math.Sin(radians)

	diag := math.Sqrt(float64(p.w*p.w + p.h*p.h))
	nw := int(math.Ceil(diag))
	nh := nw

	out, err := p.mem.Alloc(nw * nh * p.c)
	if err != nil {
		return err
	}
	clear(out)

	ocx, ocy := float64(p.w)/2, float64(p.h)/2
	ncx, ncy := float64(nw)/2, float64(nh)/2

	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			xr := float64(x) - ncx
			yr := float64(y) - ncy
			// 反向旋转回原图坐标
			xo := xr*cosA + yr*sinA + ocx
			yo := -xr*sinA + yr*cosA + ocy
			if xo >= 0 && xo < float64(p.w-1) && yo >= 0 && yo < float64(p.h-1) {
				for ch := 0; ch < p.c; ch++ {
					v := bilinear(p.data, p.w, p.h, p.c, xo, yo, ch)
					setPixel(out, nw, nh, p.c, x, y, ch, v)
				}
			}
		}
	}

	if err := p.mem.Free(p.data); err != nil {
		return err
	}
	p.data, p.w, p.h = out, nw, nh
	return nil
}

// Scale 按 factor 缩放，factor 须 > 0。
func (p *Processor) Scale(factor float64) error {
	if p.data == nil {
		return ErrNoImage
	}
	if factor <= 0 {
		return ErrBadParam
	}
	nw := int(math.Round(float64(p.w) * factor))
	nh := int(math.Round(float64(p.h) * factor))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	out, err := p.mem.Alloc(nw * nh * p.c)
	if err != nil {
		return err
	}
	clear(out)

	xRatio := float64(p.w) / float64(nw)
	yRatio := float64(p.h) / float64(nh)

	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			xo := float64(x) * xRatio
			yo := float64(y) * yRatio
			for ch := 0; ch < p.c; ch++ {
				v := bilinear(p.data, p.w, p.h, p.c, xo, yo, ch)
				setPixel(out, nw, nh, p.c, x, y, ch, v)
			}
		}
	}

	if err := p.mem.Free(p.data); err != nil {
		return err
	}
	p.data, p.w, p.h = out, nw, nh
	return nil
}
