package shift

import "github.com/cmlabs-hris/hris-shift-go/internal/pkg/apperror"

var (
	ErrUnknownShiftType = apperror.Validation("unknown_shift_type", "Shift type must be morning, evening or office")
)
