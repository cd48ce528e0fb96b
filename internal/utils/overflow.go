package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow reports whether multiplying two non-negative int64
// values would overflow.
func CheckMultiplyOverflow(a, b int64) error {
	if a == 0 || b == 0 {
		return nil // No overflow when either is zero
	}

	if a > math.MaxInt64/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds int64 max", a, b)
	}

	return nil
}

// SafeMultiply multiplies two non-negative int64 values and returns the
// result if no overflow occurs.
func SafeMultiply(a, b int64) (int64, error) {
	if err := CheckMultiplyOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// SafeProduct computes the product of dims, returning an error instead of
// silently wrapping on overflow. Shape and chunk-count products go through
// here because their inputs come from an on-disk metadata document.
func SafeProduct(dims []int64) (int64, error) {
	product := int64(1)
	for i, d := range dims {
		var err error
		product, err = SafeMultiply(product, d)
		if err != nil {
			return 0, fmt.Errorf("shape product overflow at dimension %d: %w", i, err)
		}
	}
	return product, nil
}

// ValidateBufferSize validates that a buffer size is within reasonable
// limits, used to reject implausibly large chunk/request allocations before
// they reach the allocator.
func ValidateBufferSize(size, maxSize int64, description string) error {
	if size < 0 {
		return fmt.Errorf("%s: size cannot be negative", description)
	}
	if size > maxSize {
		return fmt.Errorf("%s: size %d exceeds maximum %d", description, size, maxSize)
	}
	return nil
}

// MaxChunkElements bounds a single chunk's element count to keep pooled
// buffers (internal/utils.GetBuffer) from growing unboundedly on a
// malformed or adversarial metadata document.
const MaxChunkElements = 1 << 34
