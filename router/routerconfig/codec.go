// Copyright 2025 The Routekit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package routerconfig loads the router's top-level settings — routes
// directory, base path, extensions, watch mode — from a YAML or TOML
// file on disk, ahead of constructing a router.Router.
package routerconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Type names a supported file encoding.
type Type string

const (
	TypeYAML Type = "yaml"
	TypeTOML Type = "toml"
)

// File is the on-disk shape of router configuration.
type File struct {
	RoutesDir  string   `yaml:"routesDir" toml:"routes_dir"`
	BasePath   string   `yaml:"basePath" toml:"base_path"`
	Extensions []string `yaml:"extensions" toml:"extensions"`
	Watch      bool     `yaml:"watch" toml:"watch"`
}

// DetectType infers a Type from path's extension. An unrecognized
// extension returns "" and ok=false.
func DetectType(path string) (Type, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return TypeYAML, true
	case ".toml":
		return TypeTOML, true
	default:
		return "", false
	}
}

// Load reads path, decodes it according to its extension, and returns
// the parsed File.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("routerconfig: read %s: %w", path, err)
	}

	typ, ok := DetectType(path)
	if !ok {
		return nil, fmt.Errorf("routerconfig: %s: unrecognized extension", path)
	}

	var f File
	switch typ {
	case TypeYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("routerconfig: decode %s: %w", path, err)
		}
	case TypeTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("routerconfig: decode %s: %w", path, err)
		}
	}
	return &f, nil
}
