// Package hmm implements the ReliefMesher port by shelling out to the
// hmm heightmap-to-mesh binary (https://github.com/fogleman/hmm).
package hmm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
	"github.com/chibicitiberiu/3d-coin-maker/internal/logger"
)

// Ensure Mesher implements the interface.
var _ driven.ReliefMesher = (*Mesher)(nil)

// DefaultTimeout bounds one mesher invocation.
const DefaultTimeout = 60 * time.Second

// stderrLimit caps how much captured diagnostic output ends up in an
// error message.
const stderrLimit = 2048

// Mesher invokes the hmm binary as a bounded-time subprocess.
// The binary path is explicit configuration, not a process-wide PATH
// lookup; a bare name like "hmm" still resolves through PATH via
// exec.LookPath, but callers can pin an absolute path.
type Mesher struct {
	binary  string
	timeout time.Duration
}

// New creates a mesher for the given binary path. An empty binary
// defaults to "hmm"; a non-positive timeout defaults to DefaultTimeout.
func New(binary string, timeout time.Duration) *Mesher {
	if binary == "" {
		binary = "hmm"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Mesher{binary: binary, timeout: timeout}
}

// GenerateRelief runs: hmm <heightmap> <output.stl> -z <depth> -b <base>.
// Exit code 0 is success; anything else (including timeout or external
// kill) maps to domain.ErrExternalTool with stderr attached.
func (m *Mesher) GenerateRelief(ctx context.Context, heightmapPath, outputPath string, reliefDepth, baseThickness float64) error {
	if _, err := exec.LookPath(m.binary); err != nil {
		return fmt.Errorf("%w: mesher binary %q not found: %v", domain.ErrExternalTool, m.binary, err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	args := []string{
		heightmapPath,
		outputPath,
		"-z", strconv.FormatFloat(reliefDepth, 'f', -1, 64),
		"-b", strconv.FormatFloat(baseThickness, 'f', -1, 64),
	}
	logger.Info("running mesher: %s %v", m.binary, args)

	cmd := exec.CommandContext(ctx, m.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: mesher timed out after %s%s", domain.ErrExternalTool, m.timeout, diag(&stderr))
	}
	// Covers non-zero exits and externally killed subprocesses alike.
	return fmt.Errorf("%w: mesher failed: %v%s", domain.ErrExternalTool, err, diag(&stderr))
}

func diag(stderr *bytes.Buffer) string {
	out := bytes.TrimSpace(stderr.Bytes())
	if len(out) == 0 {
		return ""
	}
	if len(out) > stderrLimit {
		out = out[:stderrLimit]
	}
	return fmt.Sprintf(" (stderr: %s)", out)
}
