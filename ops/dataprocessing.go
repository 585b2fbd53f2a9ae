package ops

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mkfw/hexcraft/memimage"
)

// RunDataProcessingScript runs a small Lua script against img's
// lossily-normalized view, exposing read_byte(addr), write_byte(addr, v),
// min_address() and max_address() as globals. write_byte accumulates into a
// new high-priority segment per call, matching write_bytes semantics
// elsewhere in this module: it never mutates an existing segment in place.
// This is an optional hook with no equivalent CLI flag of its own; it runs
// only when a caller supplies a non-empty script.
func RunDataProcessingScript(img *memimage.Image, script string) error {
	if script == "" {
		return nil
	}

	state := lua.NewState()
	defer state.Close()

	norm := img.NormalizedLossy()

	state.SetGlobal("read_byte", state.NewFunction(func(l *lua.LState) int {
		addr := uint32(l.CheckNumber(1))
		if v, ok := norm.ReadByte(addr); ok {
			l.Push(lua.LNumber(v))
		} else {
			l.Push(lua.LNil)
		}
		return 1
	}))

	state.SetGlobal("write_byte", state.NewFunction(func(l *lua.LState) int {
		addr := uint32(l.CheckNumber(1))
		value := byte(l.CheckNumber(2))
		img.WriteBytes(addr, []byte{value})
		return 0
	}))

	state.SetGlobal("min_address", state.NewFunction(func(l *lua.LState) int {
		if v, ok := norm.MinAddress(); ok {
			l.Push(lua.LNumber(v))
		} else {
			l.Push(lua.LNil)
		}
		return 1
	}))

	state.SetGlobal("max_address", state.NewFunction(func(l *lua.LState) int {
		if v, ok := norm.MaxAddress(); ok {
			l.Push(lua.LNumber(v))
		} else {
			l.Push(lua.LNil)
		}
		return 1
	}))

	if err := state.DoString(script); err != nil {
		return fmt.Errorf("data processing script: %w", err)
	}
	return nil
}
