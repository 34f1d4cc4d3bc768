package mathtool

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Rasterizer converts a vector image payload into a PNG with transparent
// background.
type Rasterizer interface {
	Rasterize(ctx context.Context, payload []byte, ext string) ([]byte, error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(ctx context.Context, payload []byte, ext string) ([]byte, error)

func (f RasterizerFunc) Rasterize(ctx context.Context, payload []byte, ext string) ([]byte, error) {
	return f(ctx, payload, ext)
}

// ExecRasterizer shells out to an ImageMagick-style converter:
// <command> <input> -background none <output.png>.
type ExecRasterizer struct {
	Command string
	Timeout time.Duration
}

func NewExecRasterizer(command string, timeout time.Duration) *ExecRasterizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExecRasterizer{Command: command, Timeout: timeout}
}

func (r *ExecRasterizer) Rasterize(ctx context.Context, payload []byte, ext string) ([]byte, error) {
	if _, err := lookPath(r.Command); err != nil {
		return nil, fmt.Errorf("rasterizer %q not on PATH: %w", r.Command, err)
	}

	dir, err := os.MkdirTemp("", "examgest-raster-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir for rasterization: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	inPath := filepath.Join(dir, "input"+ext)
	outPath := filepath.Join(dir, "output.png")
	if err := os.WriteFile(inPath, payload, 0o600); err != nil {
		return nil, fmt.Errorf("write temp vector file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Command, inPath, "-background", "none", outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("rasterize %s: %w (output: %s)", ext, err, truncate(string(out), 200))
	}

	png, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read rasterized output: %w", err)
	}
	return png, nil
}
