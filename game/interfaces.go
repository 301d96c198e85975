package game

import (
	"context"
	"time"
)

// NetworkSession is the transport seen by a player: the core never touches
// a raw socket.
type NetworkSession interface {
	Close(errCode string)
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
}

// Player is a connected participant as seen by a room.
type Player interface {
	Id() string
	Username() string
	Send(data []byte) error
	Ping() error
	SetRoom(r Room)
	CancelAndRelease()
}

// Room is the per-session actor surface used by the lobby and by player
// pumps. All methods are safe to call from outside the room goroutine.
type Room interface {
	SetId(code string)
	SetParentLobby(l Lobby)
	GameLoop()
	Tick(now time.Time)
	PingPlayers()
	Send(ctx context.Context, env CommandEnvelope)
	RequestJoin(jreq roomJoinRequest)
	RemoveMe(ctx context.Context, p Player)
	Description() RoomDescription
}

// Lobby is the registry surface rooms call back into.
type Lobby interface {
	RemoveRoom(code string)
	RequestUpdateDescription(desc RoomDescription)
	TrackConnection(connId, roomCode string)
	UntrackConnection(connId string)
}

// QuestionProvider supplies one question on demand. May fail; the room
// retries.
type QuestionProvider interface {
	GetQuestion(ctx context.Context) (Question, error)
}

type UniqueCodeGenerator interface {
	Generate() string
	Dispose(code string)
}

type PeriodicTickerChannelCreator interface {
	Create(duration time.Duration) <-chan time.Time
}
