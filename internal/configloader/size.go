package configloader

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// ParseSize parses a byte count such as "41943040", "40MiB" or "32 MB".
func ParseSize(value string) (int64, error) {
	n, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("parse size %q: %w", value, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("size %q is too large", value)
	}
	return int64(n), nil
}
