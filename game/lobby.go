package game

import (
	"context"

	"github.com/rs/zerolog"
)

type roomCreateRequest struct {
	player   Player
	settings Settings
	respChan chan string
}

type connTrack struct {
	connId   string
	roomCode string
}

type connWhereRequest struct {
	connId   string
	respChan chan string
}

// lobby is the room registry. A single actor goroutine owns the maps;
// everything else talks to it over channels. Room-facing notifications
// are non-blocking so a busy lobby can never stall a room.
type lobby struct {
	rooms        map[string]Room
	descriptions map[string]RoomDescription
	conns        map[string]string // connection id -> room code

	codeGen       UniqueCodeGenerator
	tickerCreator PeriodicTickerChannelCreator
	provider      QuestionProvider
	log           zerolog.Logger

	createReqs     chan roomCreateRequest
	joinReqs       chan roomJoinRequest
	removeRoomChan chan string
	descUpdates    chan RoomDescription
	trackReqs      chan connTrack
	untrackReqs    chan string
	pubRoomsReqs   chan chan []RoomDescription
	whereReqs      chan connWhereRequest
}

func NewLobby(codeGen UniqueCodeGenerator, tickerCreator PeriodicTickerChannelCreator, provider QuestionProvider, log zerolog.Logger) *lobby {
	return &lobby{
		rooms:          make(map[string]Room),
		descriptions:   make(map[string]RoomDescription),
		conns:          make(map[string]string),
		codeGen:        codeGen,
		tickerCreator:  tickerCreator,
		provider:       provider,
		log:            log,
		createReqs:     make(chan roomCreateRequest, 32),
		joinReqs:       make(chan roomJoinRequest, 256),
		removeRoomChan: make(chan string, 32),
		descUpdates:    make(chan RoomDescription, 256),
		trackReqs:      make(chan connTrack, 256),
		untrackReqs:    make(chan string, 256),
		pubRoomsReqs:   make(chan chan []RoomDescription, 256),
		whereReqs:      make(chan connWhereRequest, 256),
	}
}

func (l *lobby) CreateRoom(ctx context.Context, p Player, settings Settings) (string, error) {
	respChan := make(chan string, 1)
	select {
	case l.createReqs <- roomCreateRequest{player: p, settings: settings, respChan: respChan}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case code := <-respChan:
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (l *lobby) JoinRoom(ctx context.Context, p Player, roomCode string) error {
	errChan := make(chan error, 1)
	select {
	case l.joinReqs <- roomJoinRequest{roomCode: roomCode, player: p, errChan: errChan}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *lobby) PublicRooms(ctx context.Context) []RoomDescription {
	respChan := make(chan []RoomDescription, 1)
	select {
	case l.pubRoomsReqs <- respChan:
	case <-ctx.Done():
		return nil
	}
	select {
	case resp := <-respChan:
		return resp
	case <-ctx.Done():
		return nil
	}
}

func (l *lobby) RoomOfConnection(ctx context.Context, connId string) (string, bool) {
	respChan := make(chan string, 1)
	select {
	case l.whereReqs <- connWhereRequest{connId: connId, respChan: respChan}:
	case <-ctx.Done():
		return "", false
	}
	select {
	case code := <-respChan:
		return code, code != ""
	case <-ctx.Done():
		return "", false
	}
}

func (l *lobby) RequestUpdateDescription(desc RoomDescription) {
	select {
	case l.descUpdates <- desc:
	default:
	}
}

// TrackConnection and UntrackConnection block: dropping an untrack would
// leave a stale connection mapping behind.
func (l *lobby) TrackConnection(connId, roomCode string) {
	l.trackReqs <- connTrack{connId: connId, roomCode: roomCode}
}

func (l *lobby) UntrackConnection(connId string) {
	l.untrackReqs <- connId
}

// RemoveRoom is only called from room teardown, after the room's done
// channel is closed; a lobby blocked on that room's RequestJoin has
// already been released by then.
func (l *lobby) RemoveRoom(code string) {
	l.removeRoomChan <- code
}

func (l *lobby) LobbyActor(started chan struct{}) {
	ticker := l.tickerCreator.Create(TICK_INTERVAL)
	pingTicker := l.tickerCreator.Create(PING_INTERVAL)

	close(started)

	for {
		select {
		case now := <-ticker:
			for _, r := range l.rooms {
				r.Tick(now)
			}
		case <-pingTicker:
			for _, r := range l.rooms {
				r.PingPlayers()
			}
		case req := <-l.createReqs:
			l.handleCreateRoom(req)
		case jreq := <-l.joinReqs:
			l.handleJoinRequest(jreq)
		case code := <-l.removeRoomChan:
			l.handleRemoveRoom(code)
		case desc := <-l.descUpdates:
			if _, ok := l.rooms[desc.Code]; ok {
				l.descriptions[desc.Code] = desc
			}
		case track := <-l.trackReqs:
			l.conns[track.connId] = track.roomCode
		case connId := <-l.untrackReqs:
			delete(l.conns, connId)
		case respChan := <-l.pubRoomsReqs:
			l.handlePublicRooms(respChan)
		case req := <-l.whereReqs:
			req.respChan <- l.conns[req.connId]
		}
	}
}

func (l *lobby) handleCreateRoom(req roomCreateRequest) {
	code := l.codeGen.Generate()
	settings := req.settings.normalized()

	r := NewRoom(req.player, settings, l.provider, NEXT_QUESTION_DELAY, l.log.With().Str("room", code).Logger())
	r.SetId(code)
	r.SetParentLobby(l)

	l.rooms[code] = r
	l.conns[req.player.Id()] = code
	l.descriptions[code] = r.Description()
	go r.GameLoop()

	l.log.Info().Str("room", code).Str("host", req.player.Username()).Msg("room created")
	req.respChan <- code
}

func (l *lobby) handleJoinRequest(jreq roomJoinRequest) {
	r, ok := l.rooms[jreq.roomCode]
	if !ok {
		jreq.errChan <- ErrRoomNotFound
		return
	}
	r.RequestJoin(jreq)
}

func (l *lobby) handleRemoveRoom(code string) {
	if _, ok := l.rooms[code]; !ok {
		return
	}
	delete(l.rooms, code)
	delete(l.descriptions, code)
	for connId, roomCode := range l.conns {
		if roomCode == code {
			delete(l.conns, connId)
		}
	}
	l.codeGen.Dispose(code)
	l.log.Info().Str("room", code).Msg("room removed")
}

func (l *lobby) handlePublicRooms(respChan chan []RoomDescription) {
	descs := make([]RoomDescription, 0, len(l.descriptions))
	for _, desc := range l.descriptions {
		descs = append(descs, desc)
	}
	respChan <- descs
}
