package formats

import (
	"golang.org/x/exp/constraints"

	"github.com/Faultbox/mhfc-export/pkg/report"
)

// Count limits imposed by the field widths of the formats.
const (
	maxU8Count  uint8  = 0xFF
	maxU16Count uint16 = 0xFFFF
	maxU32Count uint32 = 0xFFFFFFFF
)

// checkCount reports a recoverable error when n exceeds limit.
func checkCount[T constraints.Unsigned](r *report.Reporter, n int, limit T, format string, args ...any) bool {
	if uint64(n) <= uint64(limit) {
		return true
	}
	r.Error(format, args...)
	return false
}
