package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRegionBounds  = errors.New("invalid region bounds")
	ErrNotFound             = errors.New("not found")
	ErrImportDecodeFailed   = errors.New("import decode failed")
	ErrImportExportFailed   = errors.New("import export failed")
	ErrDurationExceedsLimit = errors.New("duration exceeds limit")
	ErrCutPrecondition      = errors.New("cut precondition failed")
)

// Kind classifies a failure for display to the user.
type Kind string

const (
	KindInvalidRegionBounds  Kind = "invalid_region_bounds"
	KindNotFound             Kind = "not_found"
	KindImportDecodeFailed   Kind = "import_decode_failed"
	KindImportExportFailed   Kind = "import_export_failed"
	KindDurationExceedsLimit Kind = "duration_exceeds_limit"
	KindCutPrecondition      Kind = "cut_precondition_failed"
	KindUnknown              Kind = "unknown"
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrInvalidRegionBounds
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureKind maps an edit or import error to its display classification.
func FailureKind(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidRegionBounds):
		return KindInvalidRegionBounds
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrImportDecodeFailed):
		return KindImportDecodeFailed
	case errors.Is(err, ErrImportExportFailed):
		return KindImportExportFailed
	case errors.Is(err, ErrDurationExceedsLimit):
		return KindDurationExceedsLimit
	case errors.Is(err, ErrCutPrecondition):
		return KindCutPrecondition
	default:
		return KindUnknown
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "edit failure"
	}
	return strings.Join(parts, ": ")
}
