package deps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"
)

// Install methods, in the order they are tried.
const (
	MethodPacman  = "pacman"
	MethodPip     = "pip"
	MethodManaged = "managed download"
)

// ManagedInstall downloads a standalone binary and returns its path.
type ManagedInstall func(ctx context.Context) (string, error)

func installYtDlp(ctx context.Context) (string, error) {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return "", err
	}
	return resolved.Executable, nil
}

func installFFmpeg(ctx context.Context) (string, error) {
	resolved, err := ytdlp.InstallFFmpeg(ctx, nil)
	if err != nil {
		return "", err
	}
	return resolved.Executable, nil
}

// Installer tries the install methods for a missing dependency in turn.
type Installer struct {
	logger  *zap.Logger
	checker *Checker
	run     CommandRunner
	managed map[string]ManagedInstall
}

func NewInstaller(logger *zap.Logger, checker *Checker) *Installer {
	return &Installer{
		logger:  logger,
		checker: checker,
		run:     execRunner,
		managed: map[string]ManagedInstall{
			"yt-dlp": installYtDlp,
			"ffmpeg": installFFmpeg,
		},
	}
}

// Ensure checks requirements and, when install is true, installs the missing
// required ones. The returned error wraps ErrMissingDependencies if anything
// required is still unavailable.
func (i *Installer) Ensure(ctx context.Context, requirements []Requirement, install bool) ([]Status, error) {
	statuses := i.checker.Check(ctx, requirements)

	if install {
		for idx, status := range statuses {
			if status.Available || status.Optional {
				continue
			}
			if installed, ok := i.Install(ctx, requirements[idx]); ok {
				statuses[idx] = installed
			}
		}
	}

	return statuses, MissingError(statuses)
}

// Install tries pacman, then pip, then a managed download, and returns the
// status of the first method after which the tool checks out.
func (i *Installer) Install(ctx context.Context, req Requirement) (Status, bool) {
	var errs []error

	for _, method := range []string{MethodPacman, MethodPip, MethodManaged} {
		candidate, err := i.installWith(ctx, method, req)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", method, err))
			continue
		}

		status := i.checker.Check(ctx, []Requirement{candidate})[0]
		if !status.Available {
			errs = append(errs, fmt.Errorf("%s: %s", method, status.Detail))
			continue
		}

		status.InstalledVia = method
		i.logger.Info("Installed dependency",
			zap.String("name", req.Name),
			zap.String("method", method),
			zap.String("command", status.Command))
		return status, true
	}

	i.logger.Warn("Could not install dependency",
		zap.String("name", req.Name),
		zap.Error(errors.Join(errs...)))
	return Status{}, false
}

// installWith returns the requirement to re-check after running method.
func (i *Installer) installWith(ctx context.Context, method string, req Requirement) (Requirement, error) {
	switch method {
	case MethodPacman:
		if req.Package == "" {
			return req, errors.New("no package name")
		}
		return req, i.runInstall(ctx, "sudo", "pacman", "-S", req.Package, "--noconfirm")
	case MethodPip:
		if req.PipPackage == "" {
			return req, errors.New("not available through pip")
		}
		return req, i.runInstall(ctx, "python3", "-m", "pip", "install", req.PipPackage)
	case MethodManaged:
		installer, ok := i.managed[req.Name]
		if !ok {
			return req, errors.New("no managed download")
		}
		path, err := installer(ctx)
		if err != nil {
			return req, err
		}
		req.Command = path
		return req, nil
	default:
		return req, fmt.Errorf("unknown install method %q", method)
	}
}

func (i *Installer) runInstall(ctx context.Context, name string, args ...string) error {
	i.logger.Debug("Running install command", zap.String("command", name+" "+strings.Join(args, " ")))
	out, err := i.run(ctx, name, args...)
	if err != nil {
		return fmt.Errorf("%w: %s", err, firstLine(string(out)))
	}
	return nil
}
