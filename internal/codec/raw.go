package codec

// rawCodec is the identity codec: a bytewise copy.
type rawCodec struct{}

func (rawCodec) Compress(src []byte) ([]byte, error) {
	out := make([]byte, len(src))
	copy(out, src)
	return out, nil
}

func (rawCodec) Decompress(src []byte, dstLen int) ([]byte, error) {
	if len(src) != dstLen {
		return nil, errLenMismatch(Raw, len(src), dstLen)
	}
	out := make([]byte, dstLen)
	copy(out, src)
	return out, nil
}

func (rawCodec) Tag() Tag { return Raw }
