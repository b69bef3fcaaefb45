package game

import (
	"math/rand"
	"strconv"
	"sync"
)

// Idgen hands out 4-digit room codes, unique among rooms that are still
// alive. The decimal space is small, so allocation is serialized and
// retried until a free code turns up.
type Idgen struct {
	ids    map[string]struct{}
	rng    func(n int) int
	locker sync.Mutex
}

func NewIdGen() Idgen {
	return Idgen{
		ids: make(map[string]struct{}),
		rng: rand.Intn,
	}
}

// Generate reserves and returns an unused room code.
func (g *Idgen) Generate() string {
	g.locker.Lock()
	defer g.locker.Unlock()
	for {
		id := strconv.Itoa(1000 + g.rng(9000))
		if _, taken := g.ids[id]; taken {
			continue
		}
		g.ids[id] = struct{}{}
		return id
	}
}

// Dispose releases a code for reuse once its room is torn down.
func (g *Idgen) Dispose(id string) {
	g.locker.Lock()
	defer g.locker.Unlock()
	delete(g.ids, id)
}
