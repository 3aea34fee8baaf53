// Where: vmm/cmd/vmm/main.go
// What: CLI entrypoint.
// Why: Execute vmm commands with configured dependencies.
package main

import (
	"fmt"
	"os"

	"github.com/poruru-code/vmm-cli/internal/command"
)

func main() {
	deps, closer, err := buildDependencies(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	code := command.Run(os.Args[1:], deps)
	if closer != nil {
		_ = closer.Close()
	}
	os.Exit(code)
}
