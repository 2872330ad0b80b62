package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agbru/ssfft/internal/config"
	"github.com/agbru/ssfft/internal/service"
)

func newTestService(cfg config.AppConfig) service.Service {
	return service.NewMultiplyService(cfg, MaxOperandBits)
}

func TestRunFunction_OneShot(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.AppConfig{Algo: "fft", Timeout: time.Minute}

	exitCode := run(context.Background(), cfg, []string{"123456789", "987654321"}, &buf)

	if exitCode != ExitSuccess {
		t.Fatalf("exit code = %d, want %d. output:\n%s", exitCode, ExitSuccess, buf.String())
	}
	if !strings.Contains(buf.String(), "121932631112635269") {
		t.Errorf("output missing expected product:\n%s", buf.String())
	}
}

func TestRunFunction_InvalidOperand(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.AppConfig{Algo: "fft", Timeout: time.Minute}

	exitCode := run(context.Background(), cfg, []string{"not-a-number", "5"}, &buf)

	if exitCode != ExitErrorConfig {
		t.Fatalf("exit code = %d, want %d", exitCode, ExitErrorConfig)
	}
}

func TestRunFunction_BadArgCount(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.AppConfig{Algo: "fft", Timeout: time.Minute}

	exitCode := run(context.Background(), cfg, []string{"1", "2", "3"}, &buf)

	if exitCode != ExitErrorConfig {
		t.Fatalf("exit code = %d, want %d", exitCode, ExitErrorConfig)
	}
	if !strings.Contains(strings.ToLower(buf.String()), "usage") {
		t.Errorf("expected a usage message, got:\n%s", buf.String())
	}
}

func TestRunBatch_MixedResults(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.AppConfig{Algo: "fft", Timeout: time.Minute}
	svc := newTestService(cfg)

	in := strings.NewReader("2 3\n# a comment\n\n4 5\n")
	exitCode := runBatch(context.Background(), svc, cfg, in, &buf)

	if exitCode != ExitSuccess {
		t.Fatalf("exit code = %d, want %d. output:\n%s", exitCode, ExitSuccess, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "line 1: 6") || !strings.Contains(out, "line 4: 20") {
		t.Errorf("missing expected batch results:\n%s", out)
	}
}

func TestRunBatch_MalformedLine(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.AppConfig{Algo: "fft", Timeout: time.Minute}
	svc := newTestService(cfg)

	in := strings.NewReader("2 3 4\n")
	exitCode := runBatch(context.Background(), svc, cfg, in, &buf)

	if exitCode != ExitErrorConfig {
		t.Fatalf("exit code = %d, want %d", exitCode, ExitErrorConfig)
	}
}

func TestHandleError_Timeout(t *testing.T) {
	var buf bytes.Buffer
	code := handleError(context.DeadlineExceeded, time.Second, time.Second, &buf)
	if code != ExitErrorTimeout {
		t.Errorf("code = %d, want %d", code, ExitErrorTimeout)
	}
}

func TestHandleError_Canceled(t *testing.T) {
	var buf bytes.Buffer
	code := handleError(context.Canceled, time.Second, time.Second, &buf)
	if code != ExitErrorCanceled {
		t.Errorf("code = %d, want %d", code, ExitErrorCanceled)
	}
}
