package ffmpegsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrFFmpegNotFound is returned when the ffmpeg or ffprobe executable cannot be located.
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

// Runner executes an external command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec, reporting stderr on failure.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s: %w\nstderr: %s", filepath.Base(name), err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// findExecutable searches for an ffmpeg tool in PATH and common locations.
// A non-empty custom path is used as-is when it exists.
func findExecutable(name, custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonDirs []string
	if runtime.GOOS == "windows" {
		commonDirs = []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	} else {
		commonDirs = []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}

	for _, dir := range commonDirs {
		p := filepath.Join(dir, execName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrFFmpegNotFound, name)
}

// siblingProbe returns the ffprobe next to a custom ffmpeg, if there is one.
func siblingProbe(ffmpegPath string) string {
	if ffmpegPath == "" {
		return ""
	}
	name := "ffprobe"
	if runtime.GOOS == "windows" {
		name = "ffprobe.exe"
	}
	p := filepath.Join(filepath.Dir(ffmpegPath), name)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
