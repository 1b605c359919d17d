package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReserveAndClose(t *testing.T) {
	r, err := Reserve(1 << 16)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<16), r.Size())
	require.Len(t, r.Data(), 1<<16)

	// 区内内存可读写
	r.Data()[0] = 0xAB
	r.Data()[1<<16-1] = 0xCD
	require.Equal(t, byte(0xAB), r.Data()[0])

	require.NoError(t, r.Close())
	require.Nil(t, r.Data())
	require.NoError(t, r.Close(), "重复 Close 幂等")
}

func TestAddressMath(t *testing.T) {
	r, err := Reserve(1 << 10)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, uint64(0), r.AddressOf(4, 0))
	require.Equal(t, uint64(16), r.AddressOf(4, 1))
	require.Equal(t, uint64(512), r.AddressOf(9, 1))

	require.Equal(t, uint64(1), r.Locate(16, 4))
	require.Equal(t, uint64(3), r.Locate(96, 5))

	// 往返一致
	for order := 4; order <= 10; order++ {
		for i := uint64(0); i < uint64(1)<<(10-order); i++ {
			off := r.AddressOf(order, i)
			require.Equal(t, i, r.Locate(off, order))
			require.True(t, r.Valid(off, order))
		}
	}
}

func TestValid(t *testing.T) {
	r, err := Reserve(1 << 10)
	require.NoError(t, err)
	defer r.Close()

	require.True(t, r.Valid(0, 10))
	require.False(t, r.Valid(1<<10, 4), "区外")
	require.False(t, r.Valid(8, 4), "不是 16 的倍数")
	require.True(t, r.Valid(48, 4))
	require.False(t, r.Valid(48, 5), "48 不是 32 的倍数")
}
