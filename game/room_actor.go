package game

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// GameLoop serializes every event touching the room's state: commands,
// joins, removals, ticks, provider results, and delay fires. It is the
// only goroutine that mutates the room.
func (r *room) GameLoop() {
	r.broadcastRoomUpdate()

	for {
		select {
		case <-r.done:
			return
		case env := <-r.inbox:
			r.handleCommand(env)
		case jreq := <-r.joinReqs:
			r.handleJoinRequest(jreq)
		case p := <-r.removals:
			r.handleRemoval(p)
		case now := <-r.ticks:
			r.handleTick(now)
		case <-r.pingPlayers:
			for _, p := range r.players {
				p.Ping()
			}
		case res := <-r.fetchResults:
			r.handleQuestionResult(res)
		case token := <-r.delayFires:
			r.handleAdvanceFire(token)
		}
	}
}

func (r *room) broadcast(eventType string, payload any) {
	data, err := json.Marshal(Message{Type: eventType, Payload: payload})
	if err != nil {
		r.log.Error().Err(err).Str("event", eventType).Msg("marshal broadcast")
		return
	}
	for _, p := range r.players {
		if err := p.Send(data); err != nil {
			r.log.Warn().Str("player", p.Username()).Str("event", eventType).Msg("send failed, dropping")
		}
	}
}

func (r *room) playerViews() []PlayerView {
	views := make([]PlayerView, 0, len(r.players))
	for _, p := range r.players {
		views = append(views, PlayerView{
			Id:       p.Id(),
			Nickname: p.Username(),
			Score:    r.scores[p],
			IsHost:   p == r.host,
		})
	}
	return views
}

func (r *room) broadcastRoomUpdate() {
	r.broadcast(EVENT_ROOM_UPDATE, RoomUpdatePayload{
		RoomCode: r.code,
		HostId:   r.host.Id(),
		Players:  r.playerViews(),
		Settings: r.settings,
	})
	if r.parentLobby != nil {
		r.parentLobby.RequestUpdateDescription(r.Description())
	}
}

func (r *room) isMember(p Player) bool {
	for _, m := range r.players {
		if m == p {
			return true
		}
	}
	return false
}

func (r *room) handleJoinRequest(jreq roomJoinRequest) {
	if r.inProgress {
		jreq.errChan <- ErrGameInProgress
		return
	}
	if len(r.players) >= r.settings.MaxPlayers {
		jreq.errChan <- ErrRoomFull
		return
	}
	for _, p := range r.players {
		if strings.EqualFold(p.Username(), jreq.player.Username()) {
			jreq.errChan <- ErrNicknameTaken
			return
		}
	}

	r.players = append(r.players, jreq.player)
	r.scores[jreq.player] = 0
	jreq.player.SetRoom(r)
	if r.parentLobby != nil {
		r.parentLobby.TrackConnection(jreq.player.Id(), r.code)
	}
	jreq.errChan <- nil

	r.log.Info().Str("player", jreq.player.Username()).Int("players", len(r.players)).Msg("player joined")
	r.broadcastRoomUpdate()
}

func (r *room) handleCommand(env CommandEnvelope) {
	if !r.isMember(env.from) {
		return
	}
	switch env.command.Type {
	case CMD_START_GAME:
		r.handleStartGame(env.from)
	case CMD_START_NEXT_QUESTION:
		r.handleManualAdvance(env.from)
	case CMD_SUBMIT_ANSWER:
		r.handleAnswer(env.from, env.command.Payload.Answer)
	default:
		r.log.Debug().Str("type", env.command.Type).Msg("unknown command")
	}
}

func (r *room) handleStartGame(from Player) {
	if from != r.host || r.inProgress || len(r.players) < 2 {
		return
	}

	r.inProgress = true
	r.questionNumber = 0
	r.totalQuestions = r.settings.Questions

	r.log.Info().Int("questions", r.totalQuestions).Msg("game started")
	r.broadcast(EVENT_GAME_STARTED, r.settings)
	if r.parentLobby != nil {
		r.parentLobby.RequestUpdateDescription(r.Description())
	}
	r.startNextQuestion()
}

func (r *room) handleManualAdvance(from Player) {
	if from != r.host || !r.inProgress {
		return
	}
	r.startNextQuestion()
}

func (r *room) handleAnswer(from Player, answer string) {
	if r.phase != PHASE_QUESTION && r.phase != PHASE_ANSWERED {
		return
	}
	if r.current == nil || normalizeAnswer(answer) == "" {
		return
	}

	correct := matchesAnswer(answer, r.current.AcceptedAnswers)
	r.broadcast(EVENT_PLAYER_ANSWERED, PlayerAnsweredPayload{
		PlayerId: from.Id(),
		Nickname: from.Username(),
		Answer:   answer,
		Correct:  correct,
	})

	// First correct submission wins the round; anything after is just an
	// annotated attempt.
	if !correct || r.questionAnswered {
		return
	}

	r.questionAnswered = true
	r.phase = PHASE_ANSWERED
	r.scores[from]++
	r.countdownOn = false

	r.log.Info().Str("player", from.Username()).Int("question", r.questionNumber).Msg("correct answer")
	r.broadcast(EVENT_GAME_UPDATE, GameUpdatePayload{Players: r.playerViews()})
	r.broadcast(EVENT_SHOW_ANSWER, ShowAnswerPayload{
		CorrectAnswer: r.current.CorrectAnswer,
		AnsweredBy:    from.Username(),
	})
	r.armAdvanceDelay()
}

func (r *room) armAdvanceDelay() {
	token := r.roundToken
	r.advanceTimer = time.AfterFunc(r.nextQuestionDelay, func() {
		select {
		case r.delayFires <- token:
		case <-r.done:
		}
	})
}

func (r *room) handleAdvanceFire(token uint64) {
	if token != r.roundToken || !r.inProgress {
		return
	}
	r.startNextQuestion()
}

func (r *room) handleTick(now time.Time) {
	if !r.countdownOn {
		return
	}

	r.timeRemaining--
	r.broadcast(EVENT_TIME_UPDATE, TimeUpdatePayload{TimeRemaining: r.timeRemaining})
	if r.timeRemaining > 0 {
		return
	}

	r.countdownOn = false
	r.broadcast(EVENT_SHOW_ANSWER, ShowAnswerPayload{CorrectAnswer: r.current.CorrectAnswer})
	r.startNextQuestion()
}

// startNextQuestion supersedes the current round: stale timers and
// in-flight fetches are invalidated by the token bump before anything
// else happens.
func (r *room) startNextQuestion() {
	r.clearTimers()
	r.questionAnswered = false
	r.current = nil
	r.questionNumber++

	if r.questionNumber > r.totalQuestions {
		r.endGame(REASON_COMPLETED, "Game over", false)
		return
	}

	r.phase = PHASE_FETCHING
	r.requestQuestion()
}

func (r *room) requestQuestion() {
	token := r.roundToken
	go func() {
		q, err := r.provider.GetQuestion(context.Background())
		select {
		case r.fetchResults <- questionFetchResult{token: token, question: q, err: err}:
		case <-r.done:
		}
	}()
}

func (r *room) clearTimers() {
	r.roundToken++
	r.countdownOn = false
	if r.advanceTimer != nil {
		r.advanceTimer.Stop()
		r.advanceTimer = nil
	}
}

func (r *room) handleQuestionResult(res questionFetchResult) {
	if res.token != r.roundToken || r.phase != PHASE_FETCHING {
		return
	}
	if res.err != nil {
		// Best-effort retry, bounded only by the room's existence.
		r.log.Warn().Err(res.err).Int("question", r.questionNumber).Msg("question fetch failed, retrying")
		r.requestQuestion()
		return
	}

	q := res.question
	r.current = &q
	r.timeRemaining = r.settings.Timer
	r.phase = PHASE_QUESTION
	r.countdownOn = true

	r.broadcast(EVENT_GAME_QUESTION, QuestionPayload{
		ImageUrl:        q.ImageURL,
		QuestionNumber:  r.questionNumber,
		TotalQuestions:  r.totalQuestions,
		TimeRemaining:   r.timeRemaining,
		AcceptedAnswers: q.AcceptedAnswers,
		CorrectAnswer:   q.CorrectAnswer,
	})
}

func (r *room) handleRemoval(leaving Player) {
	idx := -1
	for i, p := range r.players {
		if p == leaving {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	wasHost := leaving == r.host
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	delete(r.scores, leaving)
	if r.parentLobby != nil {
		r.parentLobby.UntrackConnection(leaving.Id())
	}
	leaving.CancelAndRelease()

	r.log.Info().Str("player", leaving.Username()).Bool("wasHost", wasHost).Msg("player left")

	switch {
	case wasHost:
		// The host owns the session; no succession, the room ends.
		r.endGame(REASON_HOST_LEFT, "Host has left the game", true)
	case len(r.players) == 0:
		r.endGame(REASON_ALL_LEFT, "All players have left", false)
	default:
		r.broadcastRoomUpdate()
	}
}

func (r *room) endGame(reason, message string, hostDisconnected bool) {
	r.clearTimers()
	r.inProgress = false

	ranked := rankedViews(r.players, r.scores, r.host)
	var winner *PlayerView
	if len(ranked) > 0 {
		winner = &ranked[0]
	}

	r.log.Info().Str("reason", reason).Msg("game over")
	r.broadcast(EVENT_GAME_OVER, GameOverPayload{
		Players:          ranked,
		Winner:           winner,
		Reason:           reason,
		Message:          message,
		HostDisconnected: hostDisconnected,
		RoomCode:         r.code,
		TotalQuestions:   r.totalQuestions,
	})
	r.teardown()
}

func (r *room) teardown() {
	r.endOnce.Do(func() {
		close(r.done)
		for _, p := range r.players {
			if r.parentLobby != nil {
				r.parentLobby.UntrackConnection(p.Id())
			}
			p.CancelAndRelease()
		}
		r.players = nil
		if r.parentLobby != nil {
			r.parentLobby.RemoveRoom(r.code)
		}
	})
}
