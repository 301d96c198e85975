package game

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const MAX_NICKNAME_LENGTH = 24

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type GameHandler struct {
	lobby *lobby
	log   zerolog.Logger
}

func NewGameHandler(lobby *lobby, log zerolog.Logger) *GameHandler {
	return &GameHandler{lobby: lobby, log: log}
}

func RegisterRoutes(engine *gin.Engine, h *GameHandler) {
	group := engine.Group("/game")
	group.GET("/create", h.CreateGameHandler)
	group.GET("/join/:roomCode", h.JoinGameHandler)
	group.GET("/rooms", h.ListGamesHandler)
}

// CreateGameHandler upgrades the connection and creates a room with the
// requester as host. Settings come from query parameters; anything
// missing falls back to the defaults.
func (h *GameHandler) CreateGameHandler(ctx *gin.Context) {
	nickname, ok := nicknameFromQuery(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid-nickname"})
		return
	}
	settings := settingsFromQuery(ctx)

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	p := NewPlayer(uuid.NewString(), nickname, NewWebsocketConnection(conn))
	code, err := h.lobby.CreateRoom(ctx.Request.Context(), p, settings)
	if err != nil {
		p.session.Close("unknown-error")
		return
	}

	h.log.Info().Str("room", code).Str("nickname", nickname).Msg("room created")
	go p.ReadPump()
	go p.WritePump()
}

func (h *GameHandler) JoinGameHandler(ctx *gin.Context) {
	roomCode := strings.ToUpper(strings.TrimSpace(ctx.Param("roomCode")))
	nickname, ok := nicknameFromQuery(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid-nickname"})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	p := NewPlayer(uuid.NewString(), nickname, NewWebsocketConnection(conn))
	if err := h.lobby.JoinRoom(ctx.Request.Context(), p, roomCode); err != nil {
		h.log.Debug().Err(err).Str("room", roomCode).Str("nickname", nickname).Msg("join rejected")
		p.session.Close(closeCodeForError(err))
		return
	}

	go p.ReadPump()
	go p.WritePump()
}

func (h *GameHandler) ListGamesHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.lobby.PublicRooms(ctx.Request.Context()))
}

func nicknameFromQuery(ctx *gin.Context) (string, bool) {
	nickname := strings.TrimSpace(ctx.Query("nickname"))
	if nickname == "" || len(nickname) > MAX_NICKNAME_LENGTH {
		return "", false
	}
	return nickname, true
}

func settingsFromQuery(ctx *gin.Context) Settings {
	return Settings{
		MaxPlayers: intQuery(ctx, "maxPlayers"),
		Questions:  intQuery(ctx, "questions"),
		Timer:      intQuery(ctx, "timer"),
	}
}

func intQuery(ctx *gin.Context, name string) int {
	v, err := strconv.Atoi(ctx.Query(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func closeCodeForError(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "room-not-found"
	case errors.Is(err, ErrGameInProgress):
		return "game-in-progress"
	case errors.Is(err, ErrNicknameTaken):
		return "nickname-taken"
	case errors.Is(err, ErrRoomFull):
		return "room-full"
	default:
		return "unknown-error"
	}
}
