package ndchunk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCreateConfig(t *testing.T) {
	cfg := defaultCreateConfig()
	require.Equal(t, "raw", cfg.compressor.ID)
	require.True(t, cfg.layoutA)
}

func TestWithCodec(t *testing.T) {
	cfg := defaultCreateConfig()
	opt := WithCodec("blosc", CodecParams{Level: 7, BlockSize: 2048, Shuffle: true, TypeSize: 4})
	require.NoError(t, opt(&cfg))

	require.Equal(t, "blosc", cfg.compressor.ID)
	require.Equal(t, 7, cfg.compressor.Level)
	require.Equal(t, 2048, cfg.compressor.BlockSize)
	require.Equal(t, 4, cfg.compressor.TypeSize)
	require.Equal(t, 1, cfg.compressor.Shuffle)
}

func TestWithLayoutB(t *testing.T) {
	cfg := defaultCreateConfig()
	require.NoError(t, WithLayoutB()(&cfg))
	require.False(t, cfg.layoutA)
}
