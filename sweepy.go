// Package sweepy finds exported symbols that no reachable module
// imports across a JavaScript/TypeScript/Vue source tree.
package sweepy

import (
	"context"
	"errors"
	"os"

	"github.com/joris-gallot/sweepy/domain"
	"github.com/joris-gallot/sweepy/service"
)

// ErrInvalidRoot is returned when the project root does not exist or
// is not a directory.
var ErrInvalidRoot = errors.New("sweepy: project root does not exist or is not a directory")

// ErrNoEntries is returned when no entry files are supplied.
var ErrNoEntries = errors.New("sweepy: at least one entry file is required")

// Config mirrors domain.Config: the alias table and extension list an
// analysis may override. ExtraSourceRoots is carried but not read by
// Analyze; only files under projectRoot are discovered. The zero value
// uses sweepy's defaults.
type Config = domain.Config

// Report is the result of an analysis: every file reachable from the
// given entries, and every export among them that nothing imports.
type Report = domain.Report

// Analyze walks projectRoot, parses every discovered JS/TS/Vue file,
// and reports exports unused by anything reachable from entries.
// entries may be absolute or relative to projectRoot. A per-file parse
// or read failure never fails the call; it is absorbed into an empty
// ModuleFacts for that file. The call fails only when projectRoot is
// not a usable directory or entries is empty.
func Analyze(ctx context.Context, projectRoot string, entries []string, cfg *Config) (*Report, error) {
	info, err := os.Stat(projectRoot)
	if err != nil || !info.IsDir() {
		return nil, ErrInvalidRoot
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	report, _, err := service.NewAnalyzer().Analyze(ctx, projectRoot, entries, cfg)
	if err != nil {
		return nil, err
	}
	return report, nil
}
