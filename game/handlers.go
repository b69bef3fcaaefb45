package game

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are filtered by the allowlist middleware before this runs.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GameHandler exposes the websocket entry points. Everything after the
// upgrade flows over the socket as JSON envelopes.
type GameHandler struct {
	service *Service
}

func NewGameHandler(service *Service) *GameHandler {
	return &GameHandler{service: service}
}

// CreateRoomHandler upgrades the caller and opens a fresh room with
// them as host.
func (h *GameHandler) CreateRoomHandler(ctx *gin.Context) {
	name := ctx.Query("name")
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("ws upgrade failed")
		return
	}

	playerID := uuid.New().String()
	sess := newSession(h.service, NewWebsocketConnection(conn), playerID)
	room := h.service.CreateRoom(playerID, name, sess)
	sess.roomID = room.ID()

	go sess.WritePump()
	go sess.ReadPump()
}

// JoinRoomHandler upgrades the caller and adds them to an existing
// lobby. Join failures are the one place a room-level error is sent
// back before closing.
func (h *GameHandler) JoinRoomHandler(ctx *gin.Context) {
	roomID := ctx.Param("roomid")
	name := ctx.Query("name")
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("ws upgrade failed")
		return
	}

	playerID := uuid.New().String()
	sess := newSession(h.service, NewWebsocketConnection(conn), playerID)
	if err := h.service.JoinRoom(roomID, playerID, name, sess); err != nil {
		sess.sendError(err)
		select {
		case data := <-sess.outbox:
			sess.conn.Write(data)
		default:
		}
		sess.conn.Close(err.Error())
		return
	}
	sess.roomID = roomID

	go sess.WritePump()
	go sess.ReadPump()
}
