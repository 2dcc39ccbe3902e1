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

package router

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultExtensions are the four web file extensions recognized when none
// are configured explicitly.
var DefaultExtensions = []string{".tsx", ".ts", ".jsx", ".js"}

func hasAllowedExtension(name string, extensions []string) bool {
	ext := filepath.Ext(name)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Discover recursively enumerates routesDir, yielding files whose
// extension is in extensions. Paths are forward-slash normalized relative
// to routesDir regardless of OS. A missing directory is not an error: an
// empty file list is returned.
func Discover(routesDir string, extensions []string) ([]RouteFile, error) {
	if _, err := os.Stat(routesDir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrDirUnreadable, err)
	}

	var files []RouteFile
	err := filepath.WalkDir(routesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDirUnreadable, err)
		}
		if d.IsDir() {
			return nil
		}
		if !hasAllowedExtension(d.Name(), extensions) {
			return nil
		}
		rel, err := filepath.Rel(routesDir, p)
		if err != nil {
			return err
		}
		files = append(files, RouteFile{
			RelPath: filepath.ToSlash(rel),
			AbsPath: p,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// relFromAbs is a small helper used by the watcher to turn an absolute
// path, known to live under routesDir, into a forward-slash relative path.
func relFromAbs(routesDir, abs string) string {
	rel, err := filepath.Rel(routesDir, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

