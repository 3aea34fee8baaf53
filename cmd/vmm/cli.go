// Where: vmm/cmd/vmm/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import "github.com/poruru-code/vmm-cli/internal/app"

var buildDependencies = app.BuildDependencies
