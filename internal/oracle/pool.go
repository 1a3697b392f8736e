package oracle

import (
	"strings"
	"sync"
)

// Pool is a bounded FIFO of phrases; the oldest phrase is evicted first.
type Pool struct {
	mu      sync.Mutex
	size    int
	phrases []string
}

// NewPool returns a pool holding at most size phrases, seeded with initial.
func NewPool(size int, initial ...string) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{size: size}
	for _, s := range initial {
		p.Add(s)
	}
	return p
}

// Add appends s. Blank phrases and repeats of the newest phrase are ignored.
func (p *Pool) Add(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.phrases); n > 0 && p.phrases[n-1] == s {
		return false
	}
	p.phrases = append(p.phrases, s)
	if over := len(p.phrases) - p.size; over > 0 {
		p.phrases = append(p.phrases[:0], p.phrases[over:]...)
	}
	return true
}

// Phrases returns a copy of the pool, oldest first.
func (p *Pool) Phrases() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.phrases...)
}

// Len reports the number of phrases held.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.phrases)
}
