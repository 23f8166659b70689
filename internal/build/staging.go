package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/booknav/internal/logfields"
)

// stager writes into <output>_stage and swaps it into place on finalize.
type stager struct {
	outputDir string
	stageDir  string
	pretty    bool
}

func (s *stager) begin() error {
	stage := s.outputDir + "_stage"
	// Leftovers from an interrupted build are discarded.
	if err := os.RemoveAll(stage); err != nil {
		return err
	}
	if err := os.MkdirAll(stage, 0o750); err != nil {
		return err
	}
	s.stageDir = stage
	slog.Debug("initialized staging directory", slog.String("staging", stage), logfields.Path(s.outputDir))
	return nil
}

// writeJSON writes v to rel inside the staging directory.
func (s *stager) writeJSON(rel string, v any) error {
	if s.stageDir == "" {
		return errors.New("no staging directory initialized")
	}
	var (
		data []byte
		err  error
	)
	if s.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", rel, err)
	}
	p := filepath.Join(s.stageDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return err
	}
	return os.WriteFile(p, append(data, '\n'), 0o600)
}

// finalize promotes the staging directory:
//  1. move an existing output aside to <output>.prev
//  2. rename staging to output
//  3. remove the backup
//
// If step 2 fails the backup is moved back.
func (s *stager) finalize() error {
	if s.stageDir == "" {
		return errors.New("no staging directory initialized")
	}
	if _, err := os.Stat(s.stageDir); err != nil {
		return fmt.Errorf("staging directory missing: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.outputDir), 0o750); err != nil {
		return err
	}

	prev := s.outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove stale backup: %w", err)
	}
	hadOutput := false
	if _, err := os.Stat(s.outputDir); err == nil {
		if err := os.Rename(s.outputDir, prev); err != nil {
			return fmt.Errorf("backup previous output: %w", err)
		}
		hadOutput = true
	}

	if err := os.Rename(s.stageDir, s.outputDir); err != nil {
		if hadOutput {
			if rerr := os.Rename(prev, s.outputDir); rerr != nil {
				slog.Error("failed to restore previous output", logfields.Path(s.outputDir), logfields.Error(rerr))
			}
		}
		return fmt.Errorf("promote staging directory: %w", err)
	}
	s.stageDir = ""

	if hadOutput {
		if err := os.RemoveAll(prev); err != nil {
			slog.Warn("failed to remove previous output backup", logfields.Path(prev), logfields.Error(err))
		}
	}
	return nil
}

// abort removes the staging directory. It is safe to call after finalize.
func (s *stager) abort() {
	if s.stageDir == "" {
		return
	}
	dir := s.stageDir
	s.stageDir = ""
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("failed to remove staging directory after abort", slog.String("staging", dir), logfields.Error(err))
		return
	}
	slog.Debug("removed staging directory after abort", slog.String("staging", dir))
}
