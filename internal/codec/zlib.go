package codec

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// zlibCodec implements the "zlib" codec tag: a single bare zlib stream per
// chunk. The gzip container would add header/CRC/timestamp framing no
// chunk payload needs.
type zlibCodec struct {
	level int // 1-9
}

func newZlibCodec(p Params) *zlibCodec {
	level := p.Level
	if level < 1 || level > 9 {
		level = 6
	}
	return &zlibCodec{level: level}
}

func (c *zlibCodec) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer creation failed: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib close failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *zlibCodec) Decompress(src []byte, dstLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("zlib reader creation failed: %w", err)
	}
	defer func() { _ = r.Close() }()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}
	if len(out) != dstLen {
		return nil, errLenMismatch(Zlib, len(out), dstLen)
	}
	return out, nil
}

func (c *zlibCodec) Tag() Tag { return Zlib }
