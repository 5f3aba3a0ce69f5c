package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/itemlens/itemlens/internal/analyze"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origins are not checked; deployments front this with a proxy.
		return true
	},
}

// BatchRequest asks for analysis of a list of image paths visible to the
// server.
type BatchRequest struct {
	Paths []string `json:"paths"`
}

// BatchMessage is one progress update on the batch stream.
type BatchMessage struct {
	Type      string          `json:"type"` // "progress", "done", "error"
	Path      string          `json:"path,omitempty"`
	Completed int             `json:"completed,omitempty"`
	Total     int             `json:"total,omitempty"`
	Result    *analyze.Result `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// batchWebSocketHandler streams per-image results while a batch request is
// processed.
func (s *Server) batchWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			return
		}
		websocketMessagesTotal.WithLabelValues("received").Inc()
		if messageType != websocket.TextMessage {
			continue
		}

		var req BatchRequest
		if err := json.Unmarshal(data, &req); err != nil {
			s.sendBatchMessage(conn, BatchMessage{Type: "error", Error: "invalid request"})
			continue
		}
		s.runBatchStream(r.Context(), conn, req)

		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	}
}

func (s *Server) runBatchStream(ctx context.Context, conn *websocket.Conn, req BatchRequest) {
	total := len(req.Paths)
	for i, path := range req.Paths {
		select {
		case <-ctx.Done():
			s.sendBatchMessage(conn, BatchMessage{Type: "error", Error: ctx.Err().Error()})
			return
		default:
		}

		start := time.Now()
		res, err := s.analyzer.AnalyzeFile(ctx, path)
		msg := BatchMessage{Type: "progress", Path: path, Completed: i + 1, Total: total}
		if err != nil {
			analysisRequestsTotal.WithLabelValues("websocket", "error").Inc()
			msg.Error = err.Error()
		} else {
			analysisRequestsTotal.WithLabelValues("websocket", "success").Inc()
			analysisDuration.WithLabelValues("websocket").Observe(time.Since(start).Seconds())
			analysisConfidence.Observe(res.Confidence)
			msg.Result = &res
		}
		s.sendBatchMessage(conn, msg)
	}
	s.sendBatchMessage(conn, BatchMessage{Type: "done", Completed: total, Total: total})
}

func (s *Server) sendBatchMessage(conn *websocket.Conn, msg BatchMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to marshal WebSocket message", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to write WebSocket message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
