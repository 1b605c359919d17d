package imageproc_test

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"buddy_master"
	"buddy_master/imageproc"
)

// testFrame 生成 w x h 的 RGB 渐变帧。
func testFrame(w, h int) []byte {
	pix := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			pix[i] = byte(x)
			pix[i+1] = byte(y)
			pix[i+2] = byte(x + y)
		}
	}
	return pix
}

func TestSetFrameAndInfo(t *testing.T) {
	p := imageproc.New(nil)
	defer p.Close()

	require.NoError(t, p.SetFrame(8, 4, 3, testFrame(8, 4)))
	w, h, c := p.Info()
	require.Equal(t, []int{8, 4, 3}, []int{w, h, c})

	require.ErrorIs(t, p.SetFrame(0, 4, 3, nil), imageproc.ErrBadParam)
	require.ErrorIs(t, p.SetFrame(2, 2, 5, make([]byte, 20)), imageproc.ErrBadParam)
	require.ErrorIs(t, p.SetFrame(2, 2, 3, make([]byte, 5)), imageproc.ErrBadParam)
}

func TestScaleHalf(t *testing.T) {
	p := imageproc.New(nil)
	defer p.Close()
	require.NoError(t, p.SetFrame(16, 8, 3, testFrame(16, 8)))

	require.NoError(t, p.Scale(0.5))
	w, h, _ := p.Info()
	require.Equal(t, 8, w)
	require.Equal(t, 4, h)
}

func TestRotateExpandsCanvas(t *testing.T) {
	p := imageproc.New(nil)
	defer p.Close()
	require.NoError(t, p.SetFrame(8, 6, 3, testFrame(8, 6)))

	require.NoError(t, p.Rotate(45))
	w, h, _ := p.Info()
	require.Equal(t, 10, w, "对角线 sqrt(64+36)=10")
	require.Equal(t, 10, h)
}

func TestTransformErrors(t *testing.T) {
	p := imageproc.New(nil)
	require.ErrorIs(t, p.Rotate(10), imageproc.ErrNoImage)
	require.ErrorIs(t, p.Scale(2), imageproc.ErrNoImage)

	require.NoError(t, p.SetFrame(4, 4, 3, testFrame(4, 4)))
	defer p.Close()
	require.ErrorIs(t, p.Scale(0), imageproc.ErrBadParam)
	require.ErrorIs(t, p.Scale(-1), imageproc.ErrBadParam)
}

// 伙伴分配器作后端：流水线跑完、处理器关掉后，区里不应留任何存活借用。
func TestPipelineOnBuddyMemory(t *testing.T) {
	alloc, err := buddy_master.New(22)
	require.NoError(t, err)
	defer alloc.Close()

	p := imageproc.New(alloc)
	require.NoError(t, p.SetFrame(64, 48, 3, testFrame(64, 48)))
	require.Equal(t, 1, alloc.Live())

	require.NoError(t, p.Rotate(30))
	require.NoError(t, p.Scale(1.5))
	require.Equal(t, 1, alloc.Live(), "变换期两帧并存，完事只留一帧")

	require.NoError(t, p.Close())
	require.Zero(t, alloc.Live())
	require.Zero(t, alloc.TotalAllocated())
}

// 区太小时变换失败，旧帧原样保留。
func TestTransformNoSpaceKeepsFrame(t *testing.T) {
	alloc, err := buddy_master.New(15) // 32KB
	require.NoError(t, err)
	defer alloc.Close()

	p := imageproc.New(alloc)
	// 64*48*3 = 9216 -> 16KB 块；旋转画布 80*80*3 需要整区一块，但区已被劈开
	require.NoError(t, p.SetFrame(64, 48, 3, testFrame(64, 48)))

	err = p.Rotate(45)
	require.ErrorIs(t, err, buddy_master.ErrNoSpace)
	w, h, c := p.Info()
	require.Equal(t, []int{64, 48, 3}, []int{w, h, c}, "失败后旧帧不动")
	require.NoError(t, p.Close())
	require.Zero(t, alloc.Live())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")

	p := imageproc.New(nil)
	defer p.Close()
	require.NoError(t, p.SetFrame(8, 8, 3, testFrame(8, 8)))
	require.NoError(t, p.Save(path))

	q := imageproc.New(nil)
	defer q.Close()
	require.NoError(t, q.Load(path))
	w, h, _ := q.Info()
	require.Equal(t, 8, w)
	require.Equal(t, 8, h)
	// PNG 无损，RGB 数据应原样回来
	require.Equal(t, p.Data()[:24], q.Data()[:24])
}

func TestLoadAlphaGetsFourChannels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alpha.png")

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 7)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	p := imageproc.New(nil)
	defer p.Close()
	require.NoError(t, p.Load(path))
	_, _, c := p.Info()
	require.Equal(t, 4, c)
}

func TestSaveUnsupportedExt(t *testing.T) {
	p := imageproc.New(nil)
	defer p.Close()
	require.NoError(t, p.SetFrame(2, 2, 3, testFrame(2, 2)))
	require.ErrorIs(t, p.Save("x.bmp"), imageproc.ErrBadParam)
}
