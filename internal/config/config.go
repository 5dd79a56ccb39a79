// Package config loads sweepy's on-disk configuration: the alias
// table and extension list the resolver consults, plus a list of
// extra source roots, discovered the way jscan discovers its own
// config file, upward from a target path. The analysis does not read
// the extra source roots; discovery covers the project root only.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/joris-gallot/sweepy/domain"
	"github.com/joris-gallot/sweepy/internal/constants"
)

// FileConfig is the on-disk shape of sweepy's config file. It
// unmarshals directly into domain.Config via mapstructure/yaml tags.
type FileConfig struct {
	Aliases          []domain.AliasEntry `mapstructure:"aliases" yaml:"aliases"`
	ExtraSourceRoots []string             `mapstructure:"extra_source_roots" yaml:"extra_source_roots"`
	Extensions       []string             `mapstructure:"extensions" yaml:"extensions"`
}

// ToDomain converts a FileConfig into the domain.Config the analyzer
// consumes.
func (f *FileConfig) ToDomain() *domain.Config {
	return &domain.Config{
		Aliases:          f.Aliases,
		ExtraSourceRoots: f.ExtraSourceRoots,
		Extensions:       f.Extensions,
	}
}

// LoadConfig loads configuration from configPath, or discovers one
// upward from targetPath when configPath is empty. Returns
// domain.DefaultConfig() when no config file is found.
func LoadConfig(configPath, targetPath string) (*domain.Config, error) {
	if configPath == "" {
		configPath = discoverConfigFile(targetPath)
	}
	if configPath == "" {
		return domain.DefaultConfig(), nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var file FileConfig
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg := file.ToDomain()
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), domain.DefaultExtensions...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// configCandidates are the file names searched for, in priority
// order, at each directory level.
var configCandidates = []string{
	constants.ConfigFileName,
	"sweepy.yaml",
	"sweepy.yml",
	".sweepyrc",
	"sweepy.json",
}

// discoverConfigFile searches upward from targetPath's directory to
// the filesystem root for one of configCandidates, falling back to
// the current directory and $SWEEPY_CONFIG.
func discoverConfigFile(targetPath string) string {
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			if info, statErr := os.Stat(absPath); statErr == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if found := searchConfigInDirectory(dir); found != "" {
					return found
				}
				parent := filepath.Dir(dir)
				if parent == dir || dir == volume || (volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if found := searchConfigInDirectory("."); found != "" {
		return found
	}

	if env := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env
		}
	}

	return ""
}

func searchConfigInDirectory(dir string) string {
	for _, candidate := range configCandidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
