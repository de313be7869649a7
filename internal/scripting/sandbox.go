// Package scripting runs sandboxed GopherLua scripts that can query the
// attachment registry. Host access is limited to the engine.* modules.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget for one script execution when
// no limit is configured.
const DefaultInstructionLimit = 100_000

// countingContext cancels itself after Done has been called limit times.
// GopherLua's mainLoopWithContext calls Done once per opcode, so this is an
// exact instruction budget.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// newCountingContext returns a context that cancels after limit calls to
// Done.
//
// Precondition: limit > 0.
func newCountingContext(limit int) (context.Context, context.CancelFunc) {
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{Context: base, cancel: cancel, remaining: rem}, cancel
}

func effectiveLimit(instLimit int) int {
	if instLimit <= 0 {
		return DefaultInstructionLimit
	}
	return instLimit
}

// NewSandboxedState creates an LState with only the base, table, string and
// math libraries, the file and loader globals removed, and a budget of
// instLimit opcodes. A non-positive instLimit uses DefaultInstructionLimit.
//
// Postcondition: The caller owns the LState and must call cancel and then
// L.Close when done.
func NewSandboxedState(instLimit int) (*lua.LState, context.CancelFunc) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	ctx, cancel := newCountingContext(effectiveLimit(instLimit))
	L.SetContext(ctx)
	return L, cancel
}
