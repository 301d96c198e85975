package game

import (
	"context"
	"encoding/json"
)

// ReadPump decodes client commands and forwards them into the owning
// room's inbox. It exits on the first read error, which is also how
// disconnects surface: the deferred RemoveMe hands the player back to the
// room for removal.
func (p *player) ReadPump() {
	defer func() {
		if p.room != nil {
			p.room.RemoveMe(context.Background(), p)
		}
	}()

	for {
		data, err := p.session.Read()
		if err != nil {
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			continue
		}
		if !p.limiter.Allow() {
			continue
		}
		if p.room == nil {
			continue
		}

		p.room.Send(context.Background(), CommandEnvelope{command: cmd, from: p})
	}
}

func (p *player) WritePump() {
	defer p.session.Close("")

	for {
		select {
		case data, ok := <-p.sendChan:
			if !ok {
				return
			}
			if err := p.session.Write(data); err != nil {
				return
			}
		case _, ok := <-p.pingChan:
			if !ok {
				return
			}
			if err := p.session.Ping(); err != nil {
				return
			}
		}
	}
}
