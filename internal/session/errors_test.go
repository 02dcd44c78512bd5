package session_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"fourtrack/internal/session"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := session.Wrap(session.ErrImportExportFailed, "importer", "execute", "write output", cause)

	if !errors.Is(err, session.ErrImportExportFailed) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	for _, want := range []string{"importer", "execute", "write output", "disk full"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("message %q missing %q", err.Error(), want)
		}
	}
}

func TestFailureKind(t *testing.T) {
	cases := []struct {
		err  error
		want session.Kind
	}{
		{session.Wrap(session.ErrInvalidRegionBounds, "region", "validate", "", nil), session.KindInvalidRegionBounds},
		{session.Wrap(session.ErrNotFound, "session", "region", "", nil), session.KindNotFound},
		{session.Wrap(session.ErrImportDecodeFailed, "importer", "prepare", "", nil), session.KindImportDecodeFailed},
		{session.Wrap(session.ErrImportExportFailed, "importer", "execute", "", nil), session.KindImportExportFailed},
		{session.Wrap(session.ErrDurationExceedsLimit, "importer", "execute", "", nil), session.KindDurationExceedsLimit},
		{session.Wrap(session.ErrCutPrecondition, "session", "cut region", "", nil), session.KindCutPrecondition},
		{fmt.Errorf("unrelated"), session.KindUnknown},
	}

	for _, tc := range cases {
		if got := session.FailureKind(tc.err); got != tc.want {
			t.Errorf("FailureKind(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
