package id

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSession(t *testing.T) {
	gen := NewGenerator()

	first := gen.NewSession()
	second := gen.NewSession()

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "sess_"))
	assert.True(t, IsSession(first))
	assert.False(t, IsSession("app_whatever"))
}

func TestNewSessionIsSortableByTime(t *testing.T) {
	gen := NewGenerator()

	earlier := gen.NewSession()
	later := gen.NewSession()

	// ULIDs generated later never sort before earlier ones
	assert.LessOrEqual(t, earlier, later)
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const n = 100
	var mu sync.Mutex
	seen := make(map[string]bool, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := gen.NewSession()
			mu.Lock()
			seen[s] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}
