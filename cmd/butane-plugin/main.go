// Command butane-plugin runs the Butane transpiler on behalf of an
// orchestration engine and reports the outcome as a JSON result document.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if !IsReportedError(err) {
			EmitUnhandledError(os.Stdout, err)
		}
		os.Exit(1)
	}
}
