package testutil

import (
	"testing"
)

// WASI module layout shared by the fixtures:
//
//	0..7    iovec {buf, len}
//	8..11   bytes read
//	12..15  bytes written
//	16..    stdin buffer
//	100..   data segment
const (
	wasmIovec    = 0
	wasmNread    = 8
	wasmNwritten = 12
	wasmBuf      = 16
	wasmBufLen   = 1024
	wasmData     = 100
)

// Imported function indexes; _start follows them.
const (
	wasiFdRead = iota
	wasiFdWrite
	wasiProcExit
	wasmStartFunc
)

// EchoWasm returns a WASI command module that copies up to 1KiB of stdin to
// stdout and exits 0.
func EchoWasm() []byte {
	var body []byte
	body = append(body, store(wasmIovec, wasmBuf)...)
	body = append(body, store(wasmIovec+4, wasmBufLen)...)
	body = append(body, call4(wasiFdRead, 0, wasmIovec, 1, wasmNread)...)
	// iovec.len = bytes read
	body = append(body, i32Const(wasmIovec+4)...)
	body = append(body, i32Const(wasmNread)...)
	body = append(body, 0x28, 0x02, 0x00) // i32.load
	body = append(body, 0x36, 0x02, 0x00) // i32.store
	body = append(body, call4(wasiFdWrite, 1, wasmIovec, 1, wasmNwritten)...)
	return wasmModule(body, nil)
}

// FailingWasm returns a WASI command module that writes msg to stderr and
// exits with code.
func FailingWasm(msg string, code int32) []byte {
	var body []byte
	body = append(body, store(wasmIovec, wasmData)...)
	body = append(body, store(wasmIovec+4, int32(len(msg)))...)
	body = append(body, call4(wasiFdWrite, 2, wasmIovec, 1, wasmNwritten)...)
	body = append(body, i32Const(code)...)
	body = append(body, 0x10, wasiProcExit) // call proc_exit
	return wasmModule(body, []byte(msg))
}

// WriteWasm writes module to name under a temporary directory and returns the path.
func WriteWasm(t *testing.T, name string, module []byte) string {
	t.Helper()
	return WriteFile(t, name, string(module))
}

func wasmModule(startBody, data []byte) []byte {
	i32 := byte(0x7f)
	types := vec(
		[]byte{0x60, 0x04, i32, i32, i32, i32, 0x01, i32}, // (i32 i32 i32 i32) -> i32
		[]byte{0x60, 0x01, i32, 0x00},                     // (i32) -> ()
		[]byte{0x60, 0x00, 0x00},                          // () -> ()
	)
	imports := vec(
		wasiImport("fd_read", 0),
		wasiImport("fd_write", 0),
		wasiImport("proc_exit", 1),
	)
	funcs := vec([]byte{0x02})
	memory := vec([]byte{0x00, 0x01})
	exports := vec(
		append(name("memory"), 0x02, 0x00),
		append(name("_start"), 0x00, wasmStartFunc),
	)
	code := append([]byte{0x00}, startBody...) // no locals
	code = append(code, 0x0b)
	codes := vec(append(uleb(uint32(len(code))), code...))

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = append(out, section(1, types)...)
	out = append(out, section(2, imports)...)
	out = append(out, section(3, funcs)...)
	out = append(out, section(5, memory)...)
	out = append(out, section(7, exports)...)
	out = append(out, section(10, codes)...)
	if len(data) > 0 {
		seg := []byte{0x00}
		seg = append(seg, i32Const(wasmData)...)
		seg = append(seg, 0x0b)
		seg = append(seg, uleb(uint32(len(data)))...)
		seg = append(seg, data...)
		out = append(out, section(11, vec(seg))...)
	}
	return out
}

func wasiImport(field string, typeIdx byte) []byte {
	b := name("wasi_snapshot_preview1")
	b = append(b, name(field)...)
	return append(b, 0x00, typeIdx)
}

func store(addr, value int32) []byte {
	b := i32Const(addr)
	b = append(b, i32Const(value)...)
	return append(b, 0x36, 0x02, 0x00)
}

// call4 calls a 4-argument WASI function and drops its errno.
func call4(fn byte, a, b, c, d int32) []byte {
	var out []byte
	for _, v := range []int32{a, b, c, d} {
		out = append(out, i32Const(v)...)
	}
	return append(out, 0x10, fn, 0x1a)
}

func i32Const(v int32) []byte {
	return append([]byte{0x41}, sleb(v)...)
}

func section(id byte, body []byte) []byte {
	return append(append([]byte{id}, uleb(uint32(len(body)))...), body...)
}

func vec(items ...[]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func name(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func sleb(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}
