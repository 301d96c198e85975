package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeGenFormat(t *testing.T) {
	g := NewCodeGen()

	code := g.Generate()

	assert.Len(t, code, CODE_LENGTH)
	for _, c := range code {
		assert.True(t, strings.ContainsRune(CODE_ALPHABET, c), "unexpected character %q", c)
	}
}

func TestCodeGenUniqueWhileInUse(t *testing.T) {
	g := NewCodeGen()

	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		code := g.Generate()
		_, dup := seen[code]
		assert.False(t, dup, "duplicate code %s", code)
		seen[code] = struct{}{}
	}
}

func TestCodeGenDisposeFreesCode(t *testing.T) {
	g := NewCodeGen()

	code := g.Generate()
	g.Dispose(code)

	g.locker.Lock()
	_, taken := g.inUse[code]
	g.locker.Unlock()
	assert.False(t, taken)
}
