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

// Command routekit serves a file-based route tree with request tracing
// enabled, and exposes the trace inspector endpoints alongside it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"routekit.dev/routekit/router"
	"routekit.dev/routekit/router/routerconfig"
	"routekit.dev/routekit/trace"
	"routekit.dev/routekit/trace/tracemw"
	"routekit.dev/routekit/trace/transport"
)

const (
	serviceName = "routekit"
	defaultAddr = ":8787"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a routekit.yaml or routekit.toml config file")
		routesDir  = flag.String("routes", "app/routes", "routes directory (overridden by -config when set)")
		addr       = flag.String("addr", defaultAddr, "listen address")
		watch      = flag.Bool("watch", false, "watch the routes directory for changes")
		h2c        = flag.Bool("h2c", false, "accept HTTP/2 cleartext (dev or behind a trusted LB only)")
		showVer    = flag.Bool("version", false, "print version and exit")
		printTable = flag.Bool("print", false, "print the scored matcher table and exit, instead of serving; with -watch, stream reload/change/remove events to stdout as JSON lines afterward")
	)
	flag.Parse()

	if *showVer {
		fmt.Println(serviceName, "dev")
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	opts := []router.Option{
		router.WithRoutesDir(*routesDir),
		router.WithWatch(*watch),
		router.WithLogger(logger),
		router.WithH2C(*h2c),
	}
	if *configPath != "" {
		cfg, err := routerconfig.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		opts = append(opts, cfg.Options()...)
	}

	rt, err := router.New(opts...)
	if err != nil {
		logger.Error("failed to start router", "error", err)
		os.Exit(1)
	}
	defer rt.Close()

	if *printTable {
		printMatchTable(rt)
		if *watch {
			streamWatchEvents(rt)
		}
		return
	}

	tracer := trace.New()
	metrics := trace.NewMetrics(tracer, nil)
	defer metrics.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/__routekit/traces", transport.HTMLSnapshotHandler(tracer))
	mux.HandleFunc("/__routekit/api/traces", transport.SnapshotHandler(tracer, "/__routekit/api/traces"))
	mux.HandleFunc("/__routekit/api/traces/", transport.SnapshotHandler(tracer, "/__routekit/api/traces"))
	mux.HandleFunc("/__routekit/trace-ws", transport.StreamHandler(tracer, logger))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", routeHandler(rt, logger))

	traced := tracemw.Middleware(tracer, tracemw.Config{
		HeaderPrefix: "X-Routekit",
		Exclude:      []string{"/__routekit/", "/metrics"},
	})(mux)

	go func() {
		logger.Info("listening", "addr", *addr, "h2c", *h2c)
		if err := rt.Serve(*addr, traced); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = rt.Shutdown(ctx)
}

// printMatchTable writes the compiled matcher's entries to stdout in
// match-precedence order, highest score first.
func printMatchTable(rt *router.Router) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tID\tPATH\tFLAGS")
	for _, entry := range rt.MatchTable() {
		fmt.Fprintf(w, "%.1f\t%s\t%s\t%s\n", entry.Score, entry.Route.ID, entry.Route.Path, routeFlags(entry.Route))
	}
	w.Flush()
}

func routeFlags(n *router.RouteNode) string {
	var flags []string
	if n.IsIndex {
		flags = append(flags, "index")
	}
	if n.IsLayout {
		flags = append(flags, "layout")
	}
	if n.IsMiddleware {
		flags = append(flags, "middleware")
	}
	if len(flags) == 0 {
		return "-"
	}
	out := flags[0]
	for _, f := range flags[1:] {
		out += "," + f
	}
	return out
}

// watchEventLine is the JSON-lines wire shape streamed to stdout in
// -print -watch mode. It is a flat projection of router.WatchEvent: the
// route tree's nodes carry Parent/Children back-pointers that would make
// the tree itself unsafe to marshal directly.
type watchEventLine struct {
	Kind    string   `json:"kind"`
	Routes  []string `json:"routes,omitempty"`
	RouteID string   `json:"route_id,omitempty"`
	Path    string   `json:"path,omitempty"`
	Score   float64  `json:"score,omitempty"`
}

func watchEventKindName(k router.WatchEventKind) string {
	switch k {
	case router.EventReload:
		return "reload"
	case router.EventChange:
		return "change"
	case router.EventRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// streamWatchEvents encodes each reload/change/remove notification from
// the router's watcher as a single JSON line on stdout, until the process
// receives SIGINT or SIGTERM.
func streamWatchEvents(rt *router.Router) {
	events := rt.WatchEvents()
	if events == nil {
		return
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			line := watchEventLine{Kind: watchEventKindName(ev.Kind)}
			switch ev.Kind {
			case router.EventReload:
				for _, f := range ev.Routes {
					line.Routes = append(line.Routes, f.RelPath)
				}
			case router.EventChange:
				if ev.Route != nil {
					line.RouteID = ev.Route.ID
					line.Path = ev.Route.Path
					line.Score = ev.Route.Score
				}
			case router.EventRemove:
				line.RouteID = ev.RouteID
			}
			_ = enc.Encode(line)
		case <-stop:
			return
		}
	}
}

func routeHandler(rt *router.Router, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, ok := rt.Match(r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}
		logger.Debug("matched route", "path", r.URL.Path, "route_id", result.Route.ID, "params", result.Params)
		fmt.Fprintf(w, "matched %s with params %v\n", result.Route.ID, result.Params)
	}
}
