// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/fwviz/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait).
	pingPeriod = 54 * time.Second

	// Frames buffered per client. A client that falls this far behind is
	// disconnected; it would otherwise miss steps.
	sendBuffer = 256
)

// stream sends the current frame, then every published frame, to a
// websocket client.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	send := make(chan engine.Frame, sendBuffer)
	slow := make(chan struct{})
	var slowOnce sync.Once
	unsubscribe := s.sess.Subscribe(func(f engine.Frame) {
		select {
		case send <- f:
		default:
			slowOnce.Do(func() { close(slow) })
		}
	})
	defer unsubscribe()

	initial := s.sess.Frame()
	if err := writeFrame(conn, initial); err != nil {
		s.log.Debug("ws write initial frame failed", "err", err)
		return
	}
	last := initial.Seq

	// Reader goroutine - handles pongs and close messages.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return

		case <-s.closing:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return

		case <-slow:
			s.log.Warn("ws client too slow, disconnecting", "remote", r.RemoteAddr)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too slow"),
				time.Now().Add(writeWait))
			return

		case f := <-send:
			if f.Seq <= last {
				continue // already covered by the initial frame
			}
			last = f.Seq
			if err := writeFrame(conn, f); err != nil {
				s.log.Debug("ws write frame failed", "err", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, f engine.Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	return conn.WriteMessage(websocket.TextMessage, data)
}
