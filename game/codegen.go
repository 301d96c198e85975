package game

import (
	"math/rand"
	"sync"
)

const CODE_ALPHABET = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const CODE_LENGTH = 6

// codeGen hands out room codes that are unique among live rooms. A code
// goes back into the pool when the lobby disposes it.
type codeGen struct {
	inUse  map[string]struct{}
	locker sync.Mutex
}

func NewCodeGen() *codeGen {
	return &codeGen{inUse: make(map[string]struct{})}
}

func (g *codeGen) Generate() string {
	g.locker.Lock()
	defer g.locker.Unlock()

	for {
		buf := make([]byte, CODE_LENGTH)
		for i := range buf {
			buf[i] = CODE_ALPHABET[rand.Intn(len(CODE_ALPHABET))]
		}
		code := string(buf)
		if _, taken := g.inUse[code]; taken {
			continue
		}
		g.inUse[code] = struct{}{}
		return code
	}
}

func (g *codeGen) Dispose(code string) {
	g.locker.Lock()
	defer g.locker.Unlock()
	delete(g.inUse, code)
}
