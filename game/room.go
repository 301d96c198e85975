package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type questionFetchResult struct {
	token    uint64
	question Question
	err      error
}

type room struct {
	code     string
	settings Settings

	host    Player
	players []Player // join order, meaningful for ranking ties
	scores  map[Player]int

	phase            int
	inProgress       bool
	questionNumber   int // 1-based
	totalQuestions   int
	current          *Question
	questionAnswered bool
	timeRemaining    int

	// roundToken is bumped on every round transition. Timer fires and
	// provider results carry the token they were armed with; a mismatch
	// means the round they belong to is gone and the event is a no-op.
	roundToken   uint64
	countdownOn  bool
	advanceTimer *time.Timer

	nextQuestionDelay time.Duration
	provider          QuestionProvider
	parentLobby       Lobby
	log               zerolog.Logger

	inbox        chan CommandEnvelope
	joinReqs     chan roomJoinRequest
	removals     chan Player
	ticks        chan time.Time
	pingPlayers  chan struct{}
	fetchResults chan questionFetchResult
	delayFires   chan uint64

	done    chan struct{}
	endOnce sync.Once
}

func NewRoom(host Player, settings Settings, provider QuestionProvider, nextQuestionDelay time.Duration, log zerolog.Logger) *room {
	r := &room{
		settings:          settings,
		host:              host,
		players:           make([]Player, 0, settings.MaxPlayers),
		scores:            make(map[Player]int),
		phase:             PHASE_LOBBY,
		nextQuestionDelay: nextQuestionDelay,
		provider:          provider,
		log:               log,
		inbox:             make(chan CommandEnvelope, 1024),
		joinReqs:          make(chan roomJoinRequest, 64),
		removals:          make(chan Player, 64),
		ticks:             make(chan time.Time, 24),
		pingPlayers:       make(chan struct{}, 1),
		fetchResults:      make(chan questionFetchResult, 1),
		delayFires:        make(chan uint64, 1),
		done:              make(chan struct{}),
	}
	r.players = append(r.players, host)
	r.scores[host] = 0
	host.SetRoom(r)
	return r
}

func (r *room) SetId(code string)      { r.code = code }
func (r *room) SetParentLobby(l Lobby) { r.parentLobby = l }

// Description must only be read before GameLoop starts or from inside the
// room goroutine; running rooms push updates to the lobby instead.
func (r *room) Description() RoomDescription {
	return RoomDescription{
		Code:         r.code,
		PlayersCount: len(r.players),
		MaxPlayers:   r.settings.MaxPlayers,
		Started:      r.inProgress,
	}
}

// Tick never blocks the lobby; a room that is behind simply skips a beat.
func (r *room) Tick(now time.Time) {
	select {
	case r.ticks <- now:
	default:
	}
}

func (r *room) PingPlayers() {
	select {
	case r.pingPlayers <- struct{}{}:
	default:
	}
}

func (r *room) Send(ctx context.Context, env CommandEnvelope) {
	select {
	case r.inbox <- env:
	case <-r.done:
	case <-ctx.Done():
	}
}

func (r *room) RequestJoin(jreq roomJoinRequest) {
	select {
	case r.joinReqs <- jreq:
	case <-r.done:
		jreq.errChan <- ErrRoomNotFound
	}
}

func (r *room) RemoveMe(ctx context.Context, p Player) {
	select {
	case r.removals <- p:
	case <-r.done:
	case <-ctx.Done():
	}
}
