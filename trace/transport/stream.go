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

package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"routekit.dev/routekit/trace"
)

// InboundMessage is the envelope for messages a connected client sends
// up the stream. The only message type the server currently interprets
// is "client:spans".
type InboundMessage struct {
	Type  string              `json:"type"`
	Spans []trace.ClientSpan  `json:"spans,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const writeTimeout = 5 * time.Second

// StreamHandler upgrades the connection to a WebSocket, subscribes it to
// tracer's event feed for its lifetime, and forwards every event as JSON.
// Inbound "client:spans" messages are merged into the tracer via
// trace.Tracer.MergeClientSpans.
func StreamHandler(tracer *trace.Tracer, logger *slog.Logger) http.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("trace stream: upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		outbound := make(chan []byte, 64)
		unsubscribe := tracer.Subscribe(func(ev trace.Event) {
			payload, err := json.Marshal(EventToDTO(ev))
			if err != nil {
				return
			}
			select {
			case outbound <- payload:
			default:
				logger.Warn("trace stream: subscriber backpressure, dropping event")
			}
		})
		defer unsubscribe()

		done := make(chan struct{})
		go readInbound(conn, tracer, logger, done)

		for {
			select {
			case <-done:
				return
			case payload := <-outbound:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		}
	}
}

func readInbound(conn *websocket.Conn, tracer *trace.Tracer, logger *slog.Logger, done chan<- struct{}) {
	defer close(done)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg InboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Warn("trace stream: malformed inbound message", "error", err)
			continue
		}
		if msg.Type != "client:spans" {
			continue
		}
		if err := tracer.MergeClientSpans(msg.Spans); err != nil {
			logger.Warn("trace stream: client spans orphaned", "error", err)
		}
	}
}
