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

import "routekit.dev/routekit/router"

// Options translates a decoded File into router.Option values suitable
// for router.New. Zero-value fields are left to router's own defaults.
func (f *File) Options() []router.Option {
	var opts []router.Option
	if f.RoutesDir != "" {
		opts = append(opts, router.WithRoutesDir(f.RoutesDir))
	}
	if f.BasePath != "" {
		opts = append(opts, router.WithBasePath(f.BasePath))
	}
	if len(f.Extensions) > 0 {
		opts = append(opts, router.WithExtensions(f.Extensions...))
	}
	if f.Watch {
		opts = append(opts, router.WithWatch(true))
	}
	return opts
}
