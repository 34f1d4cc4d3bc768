// Package mathtool wraps the external programs the pipeline shells out
// to: the binary-equation-to-MathML translator and the vector-image
// rasterizer. Both are narrow capabilities behind single-method
// interfaces so tests swap them for doubles without touching pipeline
// logic.
package mathtool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// lookPath is the exec.LookPath implementation used by the availability
// probes. Tests may replace it to simulate a missing binary.
var lookPath = exec.LookPath

// Translator converts a binary equation payload into semantic math markup.
type Translator interface {
	Translate(ctx context.Context, payload []byte) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(ctx context.Context, payload []byte) (string, error)

func (f TranslatorFunc) Translate(ctx context.Context, payload []byte) (string, error) {
	return f(ctx, payload)
}

// ExecTranslator runs an external command with the payload written to a
// temp file as its sole argument, and reads MathML from stdout.
type ExecTranslator struct {
	Command   string
	Timeout   time.Duration
	MaxOutput int64
}

func NewExecTranslator(command string, timeout time.Duration, maxOutput int64) *ExecTranslator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxOutput <= 0 {
		maxOutput = 20 << 20
	}
	return &ExecTranslator{Command: command, Timeout: timeout, MaxOutput: maxOutput}
}

func (t *ExecTranslator) Translate(ctx context.Context, payload []byte) (string, error) {
	if _, err := lookPath(t.Command); err != nil {
		return "", fmt.Errorf("translator %q not on PATH: %w", t.Command, err)
	}

	tmp, err := os.CreateTemp("", "examgest-eq-*.bin")
	if err != nil {
		return "", fmt.Errorf("create temp file for translation: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp file for translation: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file for translation: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.Command, tmpPath)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("translator stdout: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start translator: %w", err)
	}

	out, readErr := io.ReadAll(io.LimitReader(stdout, t.MaxOutput+1))
	waitErr := cmd.Wait()
	if readErr != nil {
		return "", fmt.Errorf("read translator output: %w", readErr)
	}
	if waitErr != nil {
		return "", fmt.Errorf("translator: %w (stderr: %s)", waitErr, truncate(stderr.String(), 200))
	}
	if int64(len(out)) > t.MaxOutput {
		return "", fmt.Errorf("translator output exceeds %d bytes", t.MaxOutput)
	}
	return string(out), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
