package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules installs the engine global with its attachment and log
// tables.
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "attachment", m.newAttachmentModule(L))
	L.SetField(engine, "log", m.newLogModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) newAttachmentModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()

	// parse(name) -> {code, name, slot} | nil
	L.SetField(mod, "parse", L.NewFunction(func(L *lua.LState) int {
		id, ok := m.lookup(L.CheckString(1))
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		t := L.NewTable()
		L.SetField(t, "code", lua.LNumber(id.Code()))
		L.SetField(t, "name", lua.LString(id.Name().String()))
		L.SetField(t, "slot", lua.LString(id.Slot().String()))
		L.Push(t)
		return 1
	}))

	// parse_name(name) -> string | nil
	L.SetField(mod, "parse_name", L.NewFunction(func(L *lua.LState) int {
		id, ok := m.lookup(L.CheckString(1))
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(id.Name().String()))
		return 1
	}))

	L.SetField(mod, "exists", L.NewFunction(func(L *lua.LState) int {
		_, ok := m.lookup(L.CheckString(1))
		L.Push(lua.LBool(ok))
		return 1
	}))

	// available(firearm) -> array of names in registration order | nil
	L.SetField(mod, "available", L.NewFunction(func(L *lua.LState) int {
		firearm := L.CheckString(1)
		if m.Registry == nil {
			L.Push(lua.LNil)
			return 1
		}
		for f, ids := range m.Registry.All() {
			if f != firearm {
				continue
			}
			t := L.NewTable()
			for _, id := range ids {
				t.Append(lua.LString(id.Name().String()))
			}
			L.Push(t)
			return 1
		}
		L.Push(lua.LNil)
		return 1
	}))

	return mod
}

func (m *Manager) newLogModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, logFn := range levels {
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}
