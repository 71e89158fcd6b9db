package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	notepage "github.com/alnah/go-notepage"
	"github.com/alnah/go-notepage/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", notepage.ErrBrowserConnect, ExitBrowser},
		{"page create", notepage.ErrPageCreate, ExitBrowser},
		{"page load", notepage.ErrPageLoad, ExitBrowser},
		{"pdf generation", notepage.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", notepage.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read note", ErrReadNote, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"create dir", ErrCreateDir, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no notes", ErrNoNotes, ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"empty input", notepage.ErrEmptyInput, ExitUsage},
		{"invalid page size", notepage.ErrInvalidPageSize, ExitUsage},
		{"invalid orientation", notepage.ErrInvalidOrientation, ExitUsage},
		{"invalid margin", notepage.ErrInvalidMargin, ExitUsage},
		{"invalid icon", notepage.ErrInvalidIcon, ExitUsage},
		{"style not found", notepage.ErrStyleNotFound, ExitUsage},
		{"invalid asset path", notepage.ErrInvalidAssetPath, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"output collision", ErrOutputCollision, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"batch of browser failures", &batchError{failed: 2, first: notepage.ErrPageLoad}, ExitBrowser},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0-2 must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("custom exit code %d collides with shell reserved codes", code)
		}
	}
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"timeout", context.DeadlineExceeded, "--timeout"},
		{"page load", notepage.ErrPageLoad, "--timeout"},
		{"style", notepage.ErrStyleNotFound, "default"},
		{"icon", notepage.ErrInvalidIcon, "--icon-type"},
		{"output dir", ErrCreateDir, "parent directory"},
		{"output collision", ErrOutputCollision, "--output"},
		{"config path", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), "--config"},
		{"config name", &configNameError{name: "notes", err: config.ErrConfigNotFound}, "--config"},
		{"browser in ci", notepage.ErrBrowserConnect, "ROD_NO_SANDBOX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv(map[string]string{"CI": "true"})
			if got := hintFor(tt.err, env); !strings.Contains(got, tt.contains) {
				t.Errorf("hintFor(%v) = %q, want it to contain %q", tt.err, got, tt.contains)
			}
		})
	}

	env, _, _ := testEnv(nil)
	if got := hintFor(errors.New("other"), env); got != "" {
		t.Errorf("hintFor(other) = %q, want empty", got)
	}
}
