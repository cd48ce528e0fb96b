package codec

import (
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"

	dsbzip2 "github.com/dsnet/compress/bzip2"
)

// bzip2Codec implements the "bzip2" codec tag. The standard library only
// ships a bzip2 reader, so compression goes through
// github.com/dsnet/compress/bzip2.
type bzip2Codec struct {
	level int // 1-9, 100KB block-size units
}

func newBzip2Codec(p Params) *bzip2Codec {
	level := p.Level
	if level < 1 || level > 9 {
		level = 9
	}
	return &bzip2Codec{level: level}
}

func (c *bzip2Codec) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := dsbzip2.NewWriter(&buf, &dsbzip2.WriterConfig{Level: c.level})
	if err != nil {
		return nil, fmt.Errorf("bzip2 writer creation failed: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("bzip2 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("bzip2 close failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *bzip2Codec) Decompress(src []byte, dstLen int) ([]byte, error) {
	r := bzip2.NewReader(bytes.NewReader(src))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bzip2 decompression failed: %w", err)
	}
	if len(out) != dstLen {
		return nil, errLenMismatch(Bzip2, len(out), dstLen)
	}
	return out, nil
}

func (c *bzip2Codec) Tag() Tag { return Bzip2 }
