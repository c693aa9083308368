package deps

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentChecks = 4

// CommandRunner runs a command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Checker resolves requirements on PATH and queries their versions.
type Checker struct {
	logger  *zap.Logger
	timeout time.Duration
	run     CommandRunner
}

func NewChecker(logger *zap.Logger, timeout time.Duration) *Checker {
	return &Checker{
		logger:  logger,
		timeout: timeout,
		run:     execRunner,
	}
}

// Check looks up every requirement and queries the versions of found ones concurrently.
// A binary whose version query fails is reported unavailable.
func (c *Checker) Check(ctx context.Context, requirements []Requirement) []Status {
	statuses := CheckBinaries(requirements)

	checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(checkCtx)
	g.SetLimit(maxConcurrentChecks)

	for i := range statuses {
		if !statuses[i].Available || len(requirements[i].VersionArgs) == 0 {
			continue
		}
		status := &statuses[i]
		args := requirements[i].VersionArgs
		g.Go(func() error {
			c.queryVersion(gctx, status, args)
			return nil
		})
	}
	_ = g.Wait()

	for _, status := range statuses {
		c.logger.Debug("Dependency status",
			zap.String("name", status.Name),
			zap.String("command", status.Command),
			zap.Bool("available", status.Available),
			zap.String("version", status.Version),
			zap.String("detail", status.Detail))
	}
	return statuses
}

// queryVersion never returns an error so one failing tool does not cancel the others.
func (c *Checker) queryVersion(ctx context.Context, status *Status, args []string) {
	out, err := c.run(ctx, status.Command, args...)
	if err != nil {
		status.Available = false
		status.Detail = fmt.Sprintf("version check failed: %v", err)
		return
	}
	status.Version = firstLine(string(out))
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if line, _, found := strings.Cut(s, "\n"); found {
		return strings.TrimSpace(line)
	}
	return s
}
