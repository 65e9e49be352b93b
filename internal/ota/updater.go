package ota

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"acnode/internal/logger"
)

const downloadTimeout = 5 * time.Minute

// Updater downloads a firmware image and swaps it over the running
// binary. The caller decides when to restart.
type Updater struct {
	http *http.Client
	path string
	log  *logger.Logger
}

// NewUpdater targets the given executable path. Pass an empty path to
// resolve the current executable at apply time.
func NewUpdater(path string, log *logger.Logger) *Updater {
	return &Updater{
		http: &http.Client{Timeout: downloadTimeout},
		path: path,
		log:  log,
	}
}

// Apply fetches the image at url and atomically replaces the binary.
// On any failure the running binary is left untouched.
func (u *Updater) Apply(ctx context.Context, url, version string) error {
	target := u.path
	if target == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("resolve executable: %w", err)
		}
		target = exe
	}

	u.log.Infow("downloading firmware", "url", url, "version", version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	resp, err := u.http.Do(req)
	if err != nil {
		return fmt.Errorf("download firmware: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download firmware: unexpected status %d", resp.StatusCode)
	}

	staging, err := u.stage(resp.Body, target)
	if err != nil {
		return err
	}
	if err := os.Rename(staging, target); err != nil {
		os.Remove(staging)
		return fmt.Errorf("swap firmware: %w", err)
	}
	u.log.Infow("firmware staged", "version", version, "path", target)
	return nil
}

// stage writes the image to a temp file beside the target so the
// final rename stays on one filesystem.
func (u *Updater) stage(r io.Reader, target string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(target), ".acnode-update-*")
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	name := f.Name()
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("write firmware image: %w", err)
	}
	if err := f.Chmod(0o755); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("mark firmware executable: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("flush firmware image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("close staging file: %w", err)
	}
	return name, nil
}
