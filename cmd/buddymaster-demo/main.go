package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"buddy_master"
	"buddy_master/imageproc"
	"buddy_master/util"
)

// 对比 demo：同一条 加载->旋转->缩放->保存 流水线分别跑堆分配和伙伴分配，
// 报告耗时与伙伴分配器内的驻留峰值。
func main() {
	var (
		in    = flag.String("in", "", "输入图片（png/jpg）")
		out   = flag.String("out", "out.png", "输出图片")
		angle = flag.Float64("angle", 0, "旋转角度（度）")
		scale = flag.Float64("scale", 1.0, "缩放倍数")
		order = flag.Int("order", 24, "伙伴分配器阶数，区大小 2^order 字节")
	)
	flag.Parse()
	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: buddymaster-demo -in input.png [-out out.png] [-angle 30] [-scale 0.5] [-order 24]")
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	// 对照组：堆分配
	heapDur, err := runPipeline(log, "heap", imageproc.HeapMemory{}, *in, heapOut(*out), *angle, *scale)
	if err != nil {
		log.Fatalf("heap pipeline: %v", err)
	}

	// 伙伴分配
	alloc, err := buddy_master.New(*order)
	if err != nil {
		log.Fatalf("new allocator (order %d): %v", *order, err)
	}
	defer alloc.Close()

	peak := &peakMemory{mem: alloc}
	buddyDur, err := runPipeline(log, "buddy", peak, *in, *out, *angle, *scale)
	if err != nil {
		log.Fatalf("buddy pipeline: %v", err)
	}

	fmt.Println("------------------------")
	fmt.Printf("耗时       heap: %v  buddy: %v\n", heapDur, buddyDur)
	fmt.Printf("伙伴区容量 %s (order %d)\n", util.FmtBytes(alloc.Size()), alloc.MaxOrder())
	fmt.Printf("驻留峰值   %s  当前驻留 %s  存活 %d\n",
		util.FmtBytes(peak.peak), util.FmtBytes(alloc.TotalAllocated()), alloc.Live())
	fmt.Printf("各阶空闲   %v\n", alloc.FreeByOrder())
	fmt.Printf("[INFO] 输出已保存到 %s\n", *out)
}

// runPipeline 跑一遍完整流水线并计时。
func runPipeline(log *zap.SugaredLogger, name string, mem imageproc.Memory, in, out string, angle, scale float64) (time.Duration, error) {
	start := time.Now()
	p := imageproc.New(mem)
	defer p.Close()

	if err := p.Load(in); err != nil {
		return 0, err
	}
	w, h, c := p.Info()
	log.Infof("[%s] loaded %s: %dx%d c=%d", name, in, w, h, c)

	if angle != 0 {
		if err := p.Rotate(angle); err != nil {
			return 0, err
		}
		log.Infof("[%s] rotated %.1f deg", name, angle)
	}
	if scale != 1.0 {
		if err := p.Scale(scale); err != nil {
			return 0, err
		}
		log.Infof("[%s] scaled x%.2f", name, scale)
	}
	if err := p.Save(out); err != nil {
		return 0, err
	}
	w, h, _ = p.Info()
	log.Infof("[%s] saved %s: %dx%d in %v", name, out, w, h, time.Since(start))
	return time.Since(start), nil
}

// peakMemory 包一层 Memory，顺带记录伙伴分配器的驻留峰值。
type peakMemory struct {
	mem  *buddy_master.Allocator
	peak uint64
}

func (m *peakMemory) Alloc(n int) ([]byte, error) {
	buf, err := m.mem.Alloc(n)
	if err != nil {
		return nil, err
	}
	if t := m.mem.TotalAllocated(); t > m.peak {
		m.peak = t
	}
	return buf, nil
}

func (m *peakMemory) Free(buf []byte) error {
	return m.mem.Free(buf)
}

// heapOut 对照组输出文件名：在原文件名后追加 .heap.png（out.png -> out.png.heap.png）。
func heapOut(out string) string {
	return out + ".heap.png"
}
