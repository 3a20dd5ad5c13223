package core

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNoDirectories is returned when a request names no source directories
var ErrNoDirectories = errors.New("no source directories given")

// DirectorySource names one root directory to scan
type DirectorySource struct {
	Directory string `yaml:"directory" json:"directory"`
}

// Options is a manifest request: the roots to scan, in order
type Options struct {
	Directories []DirectorySource `yaml:"directoryJsonValue" json:"directoryJsonValue"`
}

// ParseOptions decodes a request document such as
// {"directoryJsonValue": [{"directory": "/data"}]}. YAML is accepted too.
func ParseOptions(data []byte) (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}
	if len(opts.Paths()) == 0 {
		return nil, ErrNoDirectories
	}
	return &opts, nil
}

// OptionsFromPaths builds options from plain paths
func OptionsFromPaths(paths []string) *Options {
	opts := &Options{}
	for _, p := range paths {
		opts.Directories = append(opts.Directories, DirectorySource{Directory: p})
	}
	return opts
}

// Paths returns the non-empty directory paths in request order
func (o *Options) Paths() []string {
	var paths []string
	for _, d := range o.Directories {
		if d.Directory != "" {
			paths = append(paths, d.Directory)
		}
	}
	return paths
}
