// Package wazero runs transpilers shipped as WASI modules with the wazero runtime.
//
// A Butane binary built with GOOS=wasip1 GOARCH=wasm can be used in place of a
// native one: point bin at the .wasm file and the exec dispatcher routes the
// invocation here instead of to os/exec.
//
// # Filesystem
//
// The host root is mounted at "/" in the guest, so absolute input, output and
// files-dir paths work unchanged. The guest's working directory is "/", so
// callers pass absolute paths; the butane controller anchors relative ones
// before dispatching.
//
// # Basic Usage
//
//	runner := wazero.NewRunner()
//	res, err := runner.Run(ctx, ports.CommandRequest{
//	    Command: "/opt/butane.wasm",
//	    Args:    []string{"--pretty", "--strict", "/srv/config.bu"},
//	})
package wazero
