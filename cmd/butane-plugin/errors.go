package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/reglet-dev/butane-plugin/application/butane"
)

var errInvocationFailed = errors.New("invocation failed")

// IsReportedError reports whether err was already written as a failed result.
func IsReportedError(err error) bool {
	return errors.Is(err, errInvocationFailed)
}

// EmitUnhandledError writes err as a failed result document.
func EmitUnhandledError(w io.Writer, err error) {
	if err == nil {
		return
	}
	_ = writeJSON(w, butane.FailureResult(err))
}

func writeJSON(w io.Writer, v any) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(buf, '\n'))
	return err
}
