package game

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockNetworkSession struct {
	mock.Mock
}

func (m *MockNetworkSession) Close(errCode string) {
	m.Called(errCode)
}

func (m *MockNetworkSession) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockNetworkSession) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockNetworkSession) Ping() error {
	args := m.Called()
	return args.Error(0)
}

type MockQuestionProvider struct {
	mock.Mock
}

func (m *MockQuestionProvider) GetQuestion(ctx context.Context) (Question, error) {
	args := m.Called(ctx)
	return args.Get(0).(Question), args.Error(1)
}

type MockUniqueCodeGenerator struct {
	mock.Mock
}

func (m *MockUniqueCodeGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockUniqueCodeGenerator) Dispose(code string) {
	m.Called(code)
}

type MockPeriodicTickerChannelCreator struct {
	mock.Mock
}

func (m *MockPeriodicTickerChannelCreator) Create(duration time.Duration) <-chan time.Time {
	args := m.Called(duration)
	return args.Get(0).(chan time.Time)
}

type MockLobby struct {
	mock.Mock
}

func (m *MockLobby) RemoveRoom(code string) {
	m.Called(code)
}

func (m *MockLobby) RequestUpdateDescription(desc RoomDescription) {
	m.Called(desc)
}

func (m *MockLobby) TrackConnection(connId, roomCode string) {
	m.Called(connId, roomCode)
}

func (m *MockLobby) UntrackConnection(connId string) {
	m.Called(connId)
}

// recordingPlayer is a Player fake that decodes and records everything a
// room sends it. It is safe for concurrent use because lobby tests run
// real room goroutines against it.
type recordingPlayer struct {
	id       string
	username string

	mu     sync.Mutex
	events []Message

	pings    atomic.Int64
	released atomic.Bool

	room Room
}

func newRecordingPlayer(id, username string) *recordingPlayer {
	return &recordingPlayer{id: id, username: username}
}

func (p *recordingPlayer) Id() string       { return p.id }
func (p *recordingPlayer) Username() string { return p.username }
func (p *recordingPlayer) SetRoom(r Room)   { p.room = r }

func (p *recordingPlayer) Send(data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	p.mu.Lock()
	p.events = append(p.events, msg)
	p.mu.Unlock()
	return nil
}

func (p *recordingPlayer) Ping() error {
	p.pings.Add(1)
	return nil
}

func (p *recordingPlayer) CancelAndRelease() {
	p.released.Store(true)
}

func (p *recordingPlayer) eventsOfType(eventType string) []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Message
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (p *recordingPlayer) lastEvent() (Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return Message{}, false
	}
	return p.events[len(p.events)-1], true
}

func (p *recordingPlayer) payloadOf(msg Message, target any) error {
	data, err := json.Marshal(msg.Payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
