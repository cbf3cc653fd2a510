package sessionHandler

import (
	"PostureRefine/internal/api/session"
	sessionService "PostureRefine/internal/api/session/service"
	contextPkg "PostureRefine/pkg/context"
	"context"
	"time"

	"github.com/gofiber/websocket/v2"
)

// handleAlignWebSocket runs one alignment gesture stream for a single photo
// slot. Pointer samples arrive as JSON; per-sample deltas are committed into
// the slot offset and the updated photo state is echoed back after each move.
func (h *SessionHandler) handleAlignWebSocket(c *websocket.Conn) {
	sessionID := c.Params("id")
	slot := c.Params("slot")

	h.log.Infof("Alignment WebSocket client connected for session %s slot %s", sessionID, slot)
	defer h.log.Infof("Alignment WebSocket client disconnected for session %s slot %s", sessionID, slot)

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	editor := sessionService.NewDragEditor()
	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		var msg session.DragMessage
		if err := c.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Alignment WebSocket error: %v", err)
			} else {
				h.log.Info("Alignment WebSocket connection closed")
			}
			break
		}

		switch msg.Type {
		case session.DragStart:
			editor.Begin(msg.X, msg.Y)

		case session.DragMove:
			dx, dy, ok := editor.Sample(msg.X, msg.Y)
			if !ok {
				continue
			}

			ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), sessionID), 5*time.Second)
			photo, err := h.sessionService.CommitDragDelta(ctx, sessionID, slot, dx, dy)
			cancel()

			if err != nil {
				h.log.Errorf("Error committing drag delta: %v", err)
				if writeErr := c.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
					h.log.Errorf("Error sending error response: %v", writeErr)
					return
				}
				continue
			}

			if err := c.WriteJSON(photo); err != nil {
				h.log.Errorf("Error writing JSON response: %v", err)
				return
			}

		case session.DragEnd:
			editor.End()

		default:
			h.log.Warnf("Received unexpected drag message type: %s", msg.Type)
		}
	}
}
