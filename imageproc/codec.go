package imageproc

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Load 从文件解码一帧（PNG/JPEG），转成交错字节后装入。
// 与 SetFrame 不同：先丢弃旧帧再申请新帧（装载期不需要两帧并存）。
func (p *Processor) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("imageproc: decode %s: %w", path, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	c := channelsOf(img)

	if err := p.drop(); err != nil {
		return err
	}
	buf, err := p.mem.Alloc(w * h * c)
	if err != nil {
		return err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, al := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*w + x) * c
			buf[i] = byte(r >> 8)
			buf[i+1] = byte(g >> 8)
			buf[i+2] = byte(bl >> 8)
			if c == 4 {
				buf[i+3] = byte(al >> 8)
			}
		}
	}
	p.data, p.w, p.h, p.c = buf, w, h, c
	return nil
}

// Save 按扩展名编码当前帧写入文件，支持 .png / .jpg / .jpeg。
func (p *Processor) Save(path string) error {
	if p.data == nil {
		return ErrNoImage
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return fmt.Errorf("%w: unsupported extension %q", ErrBadParam, filepath.Ext(path))
	}

	out := image.NewNRGBA(image.Rect(0, 0, p.w, p.h))
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			src := (y*p.w + x) * p.c
			dst := y*out.Stride + x*4
			out.Pix[dst] = p.data[src]
			out.Pix[dst+1] = p.data[src+1]
			out.Pix[dst+2] = p.data[src+2]
			if p.c == 4 {
				out.Pix[dst+3] = p.data[src+3]
			} else {
				out.Pix[dst+3] = 0xff
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if ext == ".png" {
		return png.Encode(f, out)
	}
	return jpeg.Encode(f, out, &jpeg.Options{Quality: 95})
}

// channelsOf 不透明图 3 通道，带 alpha 的 4 通道。
func channelsOf(img image.Image) int {
	if oq, ok := img.(interface{ Opaque() bool }); ok && oq.Opaque() {
		return 3
	}
	return 4
}
