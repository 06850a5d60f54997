package handler

import (
	"context"
	"net/http"

	"travelbot/internal/model"
	"travelbot/internal/service"
	"travelbot/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ChatHandler bridges the recommendation dialog onto a WebSocket. Each
// connection is one session: the dialog writes prompt/say frames and blocks
// on input frames, so a transition always completes before the next input is
// read.
type ChatHandler struct {
	dialog   *service.DialogController
	upgrader websocket.Upgrader
	log      *logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(dialog *service.DialogController, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		dialog: dialog,
		log:    log.Named("chat"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin enforcement is handled by the CORS middleware layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws/chat
func (h *ChatHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", logger.Error(err))
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log := h.log.With(logger.String("session_id", sessionID))
	log.Info("chat session started")

	conv := &wsConversation{conn: conn, session: sessionID}
	result, err := h.dialog.Run(c.Request.Context(), conv)
	if err != nil {
		log.Warn("chat session ended abnormally", logger.Error(err))
		return
	}

	_ = conn.WriteJSON(model.ChatMessage{Type: "done", Session: sessionID})
	log.Info("chat session finished",
		logger.Int("matches", len(result.Matches)),
		logger.Bool("booked", result.BookingLink != ""))
}

// wsConversation adapts one WebSocket connection to the dialog port
type wsConversation struct {
	conn    *websocket.Conn
	session string
}

func (w *wsConversation) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := w.conn.WriteJSON(model.ChatMessage{Type: "prompt", Session: w.session, Text: prompt}); err != nil {
		return "", err
	}

	// Skip frames until an input frame arrives.
	for {
		var msg model.ChatMessage
		if err := w.conn.ReadJSON(&msg); err != nil {
			return "", err
		}
		if msg.Type == "" || msg.Type == "input" {
			return msg.Text, nil
		}
	}
}

func (w *wsConversation) Say(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.conn.WriteJSON(model.ChatMessage{Type: "say", Session: w.session, Text: text})
}
