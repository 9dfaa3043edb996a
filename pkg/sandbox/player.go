package sandbox

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/dop251/goja"

	"github.com/arenalab/arena/pkg/game"
)

// DefaultOverageThreshold is the number of consecutive over-budget rounds a
// program may accumulate, without an intervening voluntary yield, before it
// is forcibly terminated instead of suspended.
const DefaultOverageThreshold = 5

// maxCallDepth bounds recursion through code the instrumentation pass cannot
// checkpoint. Hitting it is an agent fault, not an engine error.
const maxCallDepth = 2048

// State is the externally observable lifecycle state of a Player. Running is
// never a resting state: Step always returns with the instance yielded or
// terminated.
type State int32

const (
	StateNotStarted State = iota
	StateRunning
	StateYielded
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateYielded:
		return "yielded"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Sentinels thrown through the VM by checkpoints and bindings. They are
// plain Go panics, so agent try/catch blocks cannot swallow them.
type (
	panicKilled        struct{}
	panicSelfTerminate struct{}
	panicBudget        struct{}
	panicTestingGate   struct{}
	panicRestricted    struct{ action string }
)

// Player is one sandboxed agent instance: a dedicated worker goroutine
// running the program's VM, plus the instruction counters and lifecycle
// state the round driver reads between steps.
//
// Step must not be called concurrently for the same Player; the driver's
// round loop serializes it. Terminate is safe from any goroutine, including
// the worker's own action callbacks.
type Player struct {
	def  *Definition
	ctrl game.Controller
	vm   *goja.Runtime
	rc   *goja.Object

	limit            int64
	overageThreshold int

	state   atomic.Int32
	used    atomic.Int64
	overage int // worker-only

	resume   chan struct{}
	report   chan struct{}
	kill     chan struct{}
	done     chan struct{}
	killOnce sync.Once
	killed   atomic.Bool

	// owesReport tracks, on the worker goroutine, whether a resume has been
	// consumed that has not yet been answered.
	owesReport bool
}

// NewPlayer loads identity through the cache and prepares an isolated
// instance of it for the given controller. The seed fixes the VM's random
// source so replays are deterministic. The worker goroutine starts parked;
// nothing executes until the first Step.
func NewPlayer(identity string, ctrl game.Controller, seed int64, cache *Cache) (*Player, error) {
	def, err := cache.GetOrLoad(identity)
	if err != nil {
		return nil, err
	}

	p := &Player{
		def:              def,
		ctrl:             ctrl,
		vm:               goja.New(),
		overageThreshold: DefaultOverageThreshold,
		resume:           make(chan struct{}),
		report:           make(chan struct{}),
		kill:             make(chan struct{}),
		done:             make(chan struct{}),
	}
	p.vm.SetFieldNameMapper(goja.UncapFieldNameMapper())
	p.vm.SetMaxCallStackSize(maxCallDepth)
	rng := rand.New(rand.NewSource(seed))
	p.vm.SetRandSource(rng.Float64)
	if err := p.bind(); err != nil {
		return nil, &LoadError{Identity: identity, Err: err}
	}

	go p.run()
	return p, nil
}

// SetBytecodeLimit fixes the per-round instruction budget. Must be called
// before the first Step.
func (p *Player) SetBytecodeLimit(limit int) {
	p.limit = int64(limit)
}

// SetOverageThreshold overrides DefaultOverageThreshold. Must be called
// before the first Step.
func (p *Player) SetOverageThreshold(n int) {
	p.overageThreshold = n
}

// BytecodesUsed reports the instruction units consumed during the most
// recent Step. Valid once that Step has returned.
func (p *Player) BytecodesUsed() int {
	return int(p.used.Load())
}

// Terminated reports whether the instance has reached its absorbing
// terminal state.
func (p *Player) Terminated() bool {
	return p.State() == StateTerminated
}

// State returns the current lifecycle state.
func (p *Player) State() State {
	return State(p.state.Load())
}

func (p *Player) setState(s State) {
	p.state.Store(int32(s))
}

// Step resumes the program until it yields, terminates, or exhausts its
// budget for the round. On return the instance is yielded or terminated;
// once terminated, Step is a no-op that leaves state and counters untouched.
func (p *Player) Step() {
	if p.Terminated() {
		return
	}
	p.used.Store(0)
	select {
	case p.resume <- struct{}{}:
	case <-p.done:
		// Worker accepted a termination request while parked; there is
		// nothing left to resume.
		return
	}
	<-p.report
}

// Terminate requests termination. It is idempotent, never blocks on the
// worker, and may be called from any goroutine, including reentrantly from
// an action callback executing inside an in-flight Step. The worker honors
// the request at its next checkpoint; an in-flight Step still returns
// normally.
func (p *Player) Terminate() {
	p.killOnce.Do(func() {
		p.killed.Store(true)
		close(p.kill)
		p.vm.Interrupt(panicKilled{})
	})
}

// run is the worker goroutine: park until the first resume, execute the
// program to completion under the checkpoint protocol, then report the
// terminal state.
func (p *Player) run() {
	defer close(p.done)
	select {
	case <-p.resume:
		p.owesReport = true
		p.setState(StateRunning)
	case <-p.kill:
		p.setState(StateTerminated)
		return
	}

	err := p.execute()
	p.setState(StateTerminated)
	if err != nil {
		slog.Error("agent program terminated on fault",
			"program", p.def.Identity,
			"robot", p.ctrl.ID(),
			"error", err)
	}
	if p.owesReport {
		p.owesReport = false
		p.report <- struct{}{}
	}
}

// execute runs static initialization (the program's top-level statements)
// and then the entry point, translating sentinel panics and VM errors into
// the termination taxonomy. A nil return is a clean termination.
func (p *Player) execute() (err error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case panicKilled, panicSelfTerminate, panicTestingGate:
			err = nil
		case panicBudget:
			err = fmt.Errorf("exceeded instruction budget for %d consecutive rounds", p.overageThreshold)
		case panicRestricted:
			err = &RestrictedCallError{Identity: p.def.Identity, Action: r.action}
		default:
			err = fmt.Errorf("agent runtime fault: %v", r)
		}
	}()

	if _, err := p.vm.RunProgram(p.def.prog); err != nil {
		return p.vmError(err)
	}
	entry, ok := goja.AssertFunction(p.vm.Get(entryPoint))
	if !ok {
		// The instrumenter verified the declaration; reaching this means
		// static init redefined it to a non-function.
		return fmt.Errorf("entry point %q is not a function after static initialization", entryPoint)
	}
	if _, err := entry(goja.Undefined(), p.rc); err != nil {
		return p.vmError(err)
	}
	return nil
}

// vmError classifies an error escaping the VM. Interrupts are accepted
// termination requests; everything else is the agent's own fault.
func (p *Player) vmError(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return nil
	}
	return fmt.Errorf("uncaught agent error: %w", err)
}

// charge adds an action's cost plus the fixed call overhead, then passes
// through a checkpoint. The checkpoint runs before the action executes, so a
// budget suspension resumes exactly at the pending action.
func (p *Player) charge(cost int) {
	p.tick(int64(cost + game.CallOverhead))
}

// tick is the checkpoint the instrumentation pass injects: accumulate
// weight, honor pending termination requests, and suspend or escalate when
// the round budget is spent.
func (p *Player) tick(weight int64) {
	p.used.Add(weight)
	if p.killed.Load() {
		panic(panicKilled{})
	}
	if p.used.Load() >= p.limit {
		p.overage++
		if p.overage > p.overageThreshold {
			panic(panicBudget{})
		}
		p.suspend()
	}
}

// yield is the voluntary yield point bound as rc.yield(): it ends the round and
// resets the overage streak.
func (p *Player) yield() {
	if p.killed.Load() {
		panic(panicKilled{})
	}
	if p.def.gates.TestingTerminate {
		panic(panicTestingGate{})
	}
	p.overage = 0
	p.suspend()
}

// suspend parks the worker until the driver's next Step, or unwinds if a
// termination request arrives first. The yield report and the resume wait
// use separate channels so a terminator never needs a lock the worker
// holds.
func (p *Player) suspend() {
	p.setState(StateYielded)
	p.owesReport = false
	p.report <- struct{}{}
	select {
	case <-p.resume:
		p.owesReport = true
		p.setState(StateRunning)
	case <-p.kill:
		panic(panicKilled{})
	}
}
