package game

import (
	"sync"

	"golang.org/x/time/rate"
)

const COMMAND_RATE = 4   // sustained commands per second per player
const COMMAND_BURST = 10 // burst allowance

type player struct {
	id       string
	username string

	limiter *rate.Limiter
	session NetworkSession

	sendChan chan []byte
	pingChan chan struct{}

	room        Room
	releaseOnce sync.Once
}

func NewPlayer(id, username string, session NetworkSession) *player {
	return &player{
		id:       id,
		username: username,
		limiter:  rate.NewLimiter(COMMAND_RATE, COMMAND_BURST),
		session:  session,
		sendChan: make(chan []byte, 256),
		pingChan: make(chan struct{}, 1),
	}
}

func (p *player) Id() string       { return p.id }
func (p *player) Username() string { return p.username }
func (p *player) SetRoom(r Room)   { p.room = r }

// Send never blocks the room goroutine; a client that cannot drain its
// buffer loses messages.
func (p *player) Send(data []byte) error {
	select {
	case p.sendChan <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (p *player) Ping() error {
	select {
	case p.pingChan <- struct{}{}:
	default:
	}
	return nil
}

// CancelAndRelease shuts the pumps down. Only the owning room calls this,
// so the once guard covers double-removal, not concurrent callers.
func (p *player) CancelAndRelease() {
	p.releaseOnce.Do(func() {
		close(p.sendChan)
		close(p.pingChan)
	})
}
