package http

import (
	"errors"
	"strings"
	"testing"
)

func TestCacheStatus_NilError(t *testing.T) {
	if got := cacheStatus(nil); got != "ok" {
		t.Errorf("expected ok, got %q", got)
	}
}

func TestCacheStatus_RealError(t *testing.T) {
	got := cacheStatus(errors.New("connection refused"))
	if !strings.HasPrefix(got, "error: ") {
		t.Errorf("expected error status, got %q", got)
	}
}
