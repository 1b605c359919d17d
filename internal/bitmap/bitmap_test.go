package bitmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkAndQuery(t *testing.T) {
	b := New(4, 10)

	require.False(t, b.IsFree(4, 0))
	b.MarkFree(4, 0)
	require.True(t, b.IsFree(4, 0))

	// 幂等
	b.MarkFree(4, 0)
	require.True(t, b.IsFree(4, 0))
	require.Equal(t, 1, b.CountFree(4))

	b.MarkUsed(4, 0)
	require.False(t, b.IsFree(4, 0))
	b.MarkUsed(4, 0)
	require.Equal(t, 0, b.CountFree(4))
}

func TestOutOfRange(t *testing.T) {
	b := New(4, 10)

	// 阶越界
	require.False(t, b.IsFree(3, 0))
	require.False(t, b.IsFree(11, 0))
	b.MarkFree(3, 0)
	b.MarkFree(11, 0)
	require.Equal(t, 0, b.CountFree(3))
	require.Equal(t, 0, b.CountFree(11))

	// 下标越界：order 10 只有 1 块
	b.MarkFree(10, 1)
	require.False(t, b.IsFree(10, 1))

	_, ok := b.TakeLowestFree(3)
	require.False(t, ok)
}

func TestTakeLowestFree(t *testing.T) {
	b := New(4, 12)

	_, ok := b.TakeLowestFree(4)
	require.False(t, ok)

	// 乱序置位，取出必须按下标从小到大
	for _, i := range []uint64{200, 3, 77, 64, 128} {
		b.MarkFree(4, i)
	}
	want := []uint64{3, 64, 77, 128, 200}
	for _, w := range want {
		got, ok := b.TakeLowestFree(4)
		require.True(t, ok)
		require.Equal(t, w, got)
		require.False(t, b.IsFree(4, got))
	}
	_, ok = b.TakeLowestFree(4)
	require.False(t, ok)
}

func TestTakeAcrossWords(t *testing.T) {
	// 下标跨 64 位字边界
	b := New(4, 12)
	b.MarkFree(4, 63)
	b.MarkFree(4, 64)
	b.MarkFree(4, 255)

	got, ok := b.TakeLowestFree(4)
	require.True(t, ok)
	require.Equal(t, uint64(63), got)
	got, ok = b.TakeLowestFree(4)
	require.True(t, ok)
	require.Equal(t, uint64(64), got)
	got, ok = b.TakeLowestFree(4)
	require.True(t, ok)
	require.Equal(t, uint64(255), got)
}

func TestRangeFree(t *testing.T) {
	b := New(4, 12)
	for _, i := range []uint64{5, 1, 100} {
		b.MarkFree(5, i)
	}
	var got []uint64
	b.RangeFree(5, func(i uint64) bool {
		got = append(got, i)
		return true
	})
	require.Equal(t, []uint64{1, 5, 100}, got)

	// 提前终止
	n := 0
	b.RangeFree(5, func(i uint64) bool {
		n++
		return false
	})
	require.Equal(t, 1, n)
}
