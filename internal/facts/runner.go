// Package facts gathers raw process facts from the OS. Every fact has a
// primary API-based strategy (gopsutil) and a secondary strategy that
// shells out to a platform utility and parses its text output. Parsers are
// kept separate from invocation so they can be tested against captured
// output.
package facts

import (
	"fmt"
	"os/exec"
)

// Stubbed in tests.
var (
	runCommand = func(name string, args ...string) (string, error) {
		out, err := exec.Command(name, args...).Output()
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return string(out), nil
	}
	lookPath = exec.LookPath
)

// Preflight verifies the external utilities the fallback strategies shell
// out to are present on the host. A missing utility is fatal at startup.
func Preflight() error {
	for _, tool := range []string{"lsof", "ps"} {
		if _, err := lookPath(tool); err != nil {
			return fmt.Errorf("required utility %s not found on PATH: %w", tool, err)
		}
	}
	return nil
}
