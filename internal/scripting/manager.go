package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/attachment"
)

// LookupFunc resolves an attachment name against a source.
type LookupFunc func(src attachment.Source, name string) (attachment.Identifier, bool)

// vm is one loaded script set. An LState is single-threaded, so every use
// holds mu.
type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per script set and dispatches hooks to
// it.
//
// Manager is safe for concurrent use. Calls into the same script set are
// serialized; different sets run concurrently.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	logger *zap.Logger

	// Registry backs engine.attachment. nil makes every lookup miss.
	Registry attachment.Source
	// Lookup replaces attachment.TryParse for engine.attachment lookups,
	// e.g. to record metrics. nil uses attachment.TryParse.
	Lookup LookupFunc
}

// NewManager creates a Manager with no script sets loaded.
//
// Precondition: logger must be non-nil.
func NewManager(registry attachment.Source, logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		vms:      make(map[string]*vm),
		logger:   logger,
		Registry: registry,
	}
}

// LoadScripts creates a sandboxed VM under key, registers the engine.*
// modules, then executes every *.lua file in scriptDir in lexicographic
// order. A previously loaded VM under key is replaced.
//
// Precondition: key is non-empty; scriptDir is a readable directory.
// Postcondition: on error no VM is registered or replaced.
func (m *Manager) LoadScripts(key, scriptDir string, instLimit int) error {
	if key == "" {
		return fmt.Errorf("scripting: LoadScripts: key must not be empty")
	}
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}
	cancel()
	L.RemoveContext()

	m.mu.Lock()
	old := m.vms[key]
	m.vms[key] = &vm{L: L, limit: effectiveLimit(instLimit)}
	m.mu.Unlock()

	if old != nil {
		old.close()
	}
	m.logger.Debug("scripting: loaded scripts",
		zap.String("key", key),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// CallHook calls the named Lua global function in key's VM with a fresh
// instruction budget. It returns (LNil, nil) when no VM is loaded for key or
// the hook is undefined. Lua runtime errors are logged at Warn and never
// propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(key, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v := m.vms[key]
	m.mu.RUnlock()

	if v == nil {
		m.logger.Info("scripting: no VM for key",
			zap.String("key", key),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L == nil {
		return lua.LNil, nil
	}

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	ctx, cancel := newCountingContext(v.limit)
	v.L.SetContext(ctx)
	defer func() {
		cancel()
		v.L.RemoveContext()
	}()

	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("key", key),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}

// Close releases every VM. Later CallHook calls are no-ops.
func (m *Manager) Close() {
	m.mu.Lock()
	vms := m.vms
	m.vms = make(map[string]*vm)
	m.mu.Unlock()

	for _, v := range vms {
		v.close()
	}
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L != nil {
		v.L.Close()
		v.L = nil
	}
}

func (m *Manager) lookup(name string) (attachment.Identifier, bool) {
	if m.Lookup != nil {
		return m.Lookup(m.Registry, name)
	}
	return attachment.TryParse(m.Registry, name)
}
