package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"tableflip.dev/cardboard/pkg/transfer"
)

// OverrideFile is the name of the cross-device file in an override directory.
const OverrideFile = "cardboard.json"

// ApplyOverride imports the override file at source, a path or an http(s)
// URL. It returns false when the file is unavailable or unreadable, or when
// an import is already running.
func (s *Service) ApplyOverride(ctx context.Context, source string) (bool, error) {
	if source == "" {
		return false, nil
	}
	if s.importing {
		s.log().Debug("override skipped, import in progress", zap.String("source", source))
		return false, nil
	}
	b, err := s.Fetch(ctx, source)
	if err != nil {
		s.log().Debug("override not available", zap.String("source", source), zap.Error(err))
		return false, nil
	}
	raw, err := transfer.Decode(b)
	if err != nil {
		s.log().Warn("override unreadable", zap.String("source", source), zap.Error(err))
		return false, nil
	}
	if _, err := s.Import(ctx, raw); err != nil {
		return false, err
	}
	return true, nil
}

// Fetch reads source, a file path or an http(s) URL. A directory is read
// as its OverrideFile.
func (s *Service) Fetch(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		if st, err := os.Stat(source); err == nil && st.IsDir() {
			source = filepath.Join(source, OverrideFile)
		}
		return os.ReadFile(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	client := s.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("app: fetch %s: %s", source, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// WriteOverride writes the current export to OverrideFile in dir, replacing
// it atomically. It returns false without writing when dir is not an
// existing directory.
func (s *Service) WriteOverride(ctx context.Context, dir string) (bool, error) {
	if dir == "" {
		return false, nil
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		s.log().Debug("override directory not available", zap.String("dir", dir))
		return false, nil
	}
	var buf bytes.Buffer
	if err := transfer.Encode(&buf, s.Export(), transfer.JSON); err != nil {
		return false, err
	}
	path := filepath.Join(dir, OverrideFile)
	if err := atomic.WriteFile(path, &buf); err != nil {
		return false, fmt.Errorf("app: write override %s: %w", path, err)
	}
	return true, nil
}
