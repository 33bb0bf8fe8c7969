// Package sequence provides an ordered step runner: named steps are registered with a Manager, chained with After,
// and executed by an Agent one priority group at a time, stopping at the first step that fails.
//
// Quick Start
//
// 	seq := sequence.New("My Sequence")
// 	seq.Register("first", first)
// 	seq.Register("second", second).After("first")
// 	seq.Register("third", third).After("second")
//
// 	agent, err := seq.Agent()
// 	if err != nil {
// 		// The steps don't form a valid sequence.
// 	}
// 	_ = agent.Up(context.Background())
// 	err = agent.Wait() // Error of the first failed step, if any.
//
// Steps that share a priority (they come after the same step, or after none) run concurrently in the same group.
// A single chain of After calls therefore runs strictly one step at a time.
package sequence
