// Package game implements the Star Match round: nine numbered buttons that
// must be partitioned into subsets matching a displayed star count before the
// countdown runs out.
//
// State is an immutable snapshot of a round. Transitions (Select, Click, Tick)
// return a new State and every derived value (NumberStatus, Status) is
// recomputed from the stored fields, so a State can be shared freely.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	s := game.NewState(rng)
//	s = s.Click(rng, 2)
//	s = s.Click(rng, 3)
//	if s.Status() == game.Won {
//	    // ...
//	}
//
// # Engine
//
// Engine runs rounds on a single goroutine. Selections, new-round commands
// and timer ticks are all processed by its Run loop one at a time, and the
// round timer is a quartz timer owned by the round and stopped whenever the
// round ends or is replaced:
//
//	e := game.NewEngine(quartz.NewReal(), randutil.New(seed), logger)
//	go e.Run(ctx)
//	view, err := e.Select(ctx, 5)
//
// Tests drive the timer deterministically with quartz.NewMock.
package game
