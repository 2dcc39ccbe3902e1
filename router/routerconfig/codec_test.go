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

package routerconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectType(t *testing.T) {
	typ, ok := DetectType("routes.yaml")
	require.True(t, ok)
	require.Equal(t, TypeYAML, typ)

	typ, ok = DetectType("routes.yml")
	require.True(t, ok)
	require.Equal(t, TypeYAML, typ)

	typ, ok = DetectType("routes.toml")
	require.True(t, ok)
	require.Equal(t, TypeTOML, typ)

	_, ok = DetectType("routes.json")
	require.False(t, ok)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routekit.yaml")
	content := "routesDir: app/routes\nbasePath: /api\nextensions:\n  - .tsx\n  - .jsx\nwatch: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "app/routes", f.RoutesDir)
	require.Equal(t, "/api", f.BasePath)
	require.Equal(t, []string{".tsx", ".jsx"}, f.Extensions)
	require.True(t, f.Watch)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routekit.toml")
	content := "routes_dir = \"app/routes\"\nbase_path = \"/api\"\nextensions = [\".tsx\"]\nwatch = false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "app/routes", f.RoutesDir)
	require.Equal(t, []string{".tsx"}, f.Extensions)
	require.False(t, f.Watch)
}

func TestLoadUnrecognizedExtensionFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routekit.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
