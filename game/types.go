package game

import "time"

// Room phases. A room is created in PHASE_LOBBY and cycles through
// FETCHING -> QUESTION -> ANSWERED for every round once a game starts.
const (
	PHASE_LOBBY = iota // game not started, players joining
	PHASE_FETCHING     // waiting on the question provider
	PHASE_QUESTION     // question live, countdown running
	PHASE_ANSWERED     // someone got it, advance delay running
)

const (
	DEFAULT_MAX_PLAYERS = 5
	DEFAULT_QUESTIONS   = 10
	DEFAULT_TIMER       = 15
)

const (
	TICK_INTERVAL       = time.Second
	PING_INTERVAL       = time.Second * 30
	NEXT_QUESTION_DELAY = time.Millisecond * 1500
)

// Game-over reasons, as delivered to clients.
const (
	REASON_COMPLETED = "game_completed"
	REASON_HOST_LEFT = "host_left"
	REASON_ALL_LEFT  = "all_players_left"
)

// Server -> client event names.
const (
	EVENT_ROOM_UPDATE     = "room_update"
	EVENT_GAME_STARTED    = "game_started"
	EVENT_GAME_QUESTION   = "game_question"
	EVENT_TIME_UPDATE     = "time_update"
	EVENT_PLAYER_ANSWERED = "player_answered"
	EVENT_SHOW_ANSWER     = "show_answer"
	EVENT_GAME_UPDATE     = "game_update"
	EVENT_GAME_OVER       = "game_over"
)

// Client -> server command names.
const (
	CMD_START_GAME          = "start_game"
	CMD_START_NEXT_QUESTION = "start_next_question"
	CMD_SUBMIT_ANSWER       = "submit_answer"
)

// Settings are fixed for the lifetime of a session once the game starts.
type Settings struct {
	MaxPlayers int `json:"maxPlayers"`
	Questions  int `json:"questions"`
	Timer      int `json:"timer"`
}

func (s Settings) normalized() Settings {
	if s.MaxPlayers <= 0 {
		s.MaxPlayers = DEFAULT_MAX_PLAYERS
	}
	if s.Questions <= 0 {
		s.Questions = DEFAULT_QUESTIONS
	}
	if s.Timer <= 0 {
		s.Timer = DEFAULT_TIMER
	}
	return s
}

// Question is the active question of a round. The core treats the image
// URL as opaque content; accepted answers are pre-lowercased by the
// provider.
type Question struct {
	ImageURL        string   `json:"imageUrl"`
	CorrectAnswer   string   `json:"correctAnswer"`
	AcceptedAnswers []string `json:"acceptedAnswers"`
}

// Message is the JSON envelope for every server -> client event.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Command is the JSON shape of client -> server websocket commands.
type Command struct {
	Type    string         `json:"type"`
	Payload CommandPayload `json:"payload"`
}

type CommandPayload struct {
	Answer string `json:"answer"`
}

// CommandEnvelope tags an inbound command with the player it came from.
type CommandEnvelope struct {
	command Command
	from    Player
}

type PlayerView struct {
	Id       string `json:"id"`
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
	IsHost   bool   `json:"isHost"`
	Rank     int    `json:"rank,omitempty"`
}

type RoomDescription struct {
	Code         string `json:"roomCode"`
	PlayersCount int    `json:"playersCount"`
	MaxPlayers   int    `json:"maxPlayers"`
	Started      bool   `json:"started"`
}

type roomJoinRequest struct {
	roomCode string
	player   Player
	errChan  chan error
}

type RoomUpdatePayload struct {
	RoomCode string       `json:"roomCode"`
	HostId   string       `json:"hostId"`
	Players  []PlayerView `json:"players"`
	Settings Settings     `json:"settings"`
}

type QuestionPayload struct {
	ImageUrl        string   `json:"imageUrl"`
	QuestionNumber  int      `json:"questionNumber"`
	TotalQuestions  int      `json:"totalQuestions"`
	TimeRemaining   int      `json:"timeRemaining"`
	AcceptedAnswers []string `json:"acceptedAnswers"`
	CorrectAnswer   string   `json:"correctAnswer"`
}

type TimeUpdatePayload struct {
	TimeRemaining int `json:"timeRemaining"`
}

type PlayerAnsweredPayload struct {
	PlayerId string `json:"playerId"`
	Nickname string `json:"nickname"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
}

type ShowAnswerPayload struct {
	CorrectAnswer string `json:"correctAnswer"`
	AnsweredBy    string `json:"answeredBy,omitempty"`
}

type GameUpdatePayload struct {
	Players []PlayerView `json:"players"`
}

type GameOverPayload struct {
	Players          []PlayerView `json:"players"`
	Winner           *PlayerView  `json:"winner"`
	Reason           string       `json:"reason"`
	Message          string       `json:"message"`
	HostDisconnected bool         `json:"hostDisconnected"`
	RoomCode         string       `json:"roomCode"`
	TotalQuestions   int          `json:"totalQuestions"`
}
