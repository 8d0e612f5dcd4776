package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrExternalTool marks a failed build, a failed run, or unusable output
// from the native engine.
var ErrExternalTool = errors.New("compare: external tool failed")

// maxOutputTail bounds the tool output attached to errors.
const maxOutputTail = 2048

// Engine runs the native filter engine. Dir is the engine's build
// directory; Binary is resolved relative to Dir unless absolute. A zero
// Timeout waits indefinitely.
type Engine struct {
	Dir     string
	Binary  string
	Timeout time.Duration
	Make    string
	Logger  *zap.Logger
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Engine) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.Timeout > 0 {
		return context.WithTimeout(ctx, e.Timeout)
	}
	return context.WithCancel(ctx)
}

// Build runs "make clean" and then "make" in Dir.
func (e *Engine) Build(ctx context.Context) error {
	makeBin := e.Make
	if makeBin == "" {
		makeBin = "make"
	}

	for _, args := range [][]string{{"clean"}, nil} {
		if err := e.exec(ctx, makeBin, args...); err != nil {
			return err
		}
	}
	return nil
}

// Run filters the CSV at in into out. in and out are made absolute so they
// survive the working-directory change.
func (e *Engine) Run(ctx context.Context, in, out, family, mode string) error {
	absIn, err := filepath.Abs(in)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExternalTool, err)
	}
	absOut, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExternalTool, err)
	}

	return e.exec(ctx, e.Binary, "-i", absIn, "-o", absOut, "-f", family, "-s", mode)
}

func (e *Engine) exec(ctx context.Context, name string, args ...string) error {
	ctx, cancel := e.context(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	cmd.WaitDelay = time.Second

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	err := cmd.Run()
	e.logger().Debug("engine command finished",
		zap.String("command", name),
		zap.Strings("args", args),
		zap.String("dir", e.Dir),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w\n%s", ErrExternalTool, name, strings.Join(args, " "), err, tail(output.String()))
	}
	return nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxOutputTail {
		return "..." + s[len(s)-maxOutputTail:]
	}
	return s
}
