// Where: vmm/internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface usage and error reporting.
package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/infra/output"
	"github.com/poruru-code/vmm-cli/internal/infra/ui"
	"github.com/poruru-code/vmm-cli/internal/usecase/register"
)

func newUI(out io.Writer) ui.UserInterface {
	return ui.NewUI(out)
}

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	u := newUI(out)
	var secretErr *register.SecretNotFoundError
	if errors.As(err, &secretErr) {
		u.Error(fmt.Sprintf("Could not find a secret. Make sure your secrets exist and you have permissions. Secret name: %s", secretErr.Ref))
		u.Info(fmt.Sprintf("   cause: %v", secretErr.Err))
		return 1
	}
	u.Error(err.Error())
	return 1
}

func printSource(out io.Writer, format string, title string, src source.MigrationSource) error {
	parsed, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	if parsed != output.FormatText {
		return output.Write(out, parsed, src)
	}

	rows := []ui.KeyValue{
		{Key: "Source ID", Value: src.ID()},
		{Key: "Name", Value: src.Name},
		{Key: "Description", Value: src.Description},
		{Key: "AWS region", Value: src.AWSRegion},
	}
	if src.State != "" {
		rows = append(rows, ui.KeyValue{Key: "State", Value: src.State})
	}
	if !src.CreateTime.IsZero() {
		rows = append(rows, ui.KeyValue{Key: "Created", Value: src.CreateTime.Format("2006-01-02 15:04:05 MST")})
	}
	for _, key := range sortedKeys(src.Labels) {
		rows = append(rows, ui.KeyValue{Key: "Label " + key, Value: src.Labels[key]})
	}
	newUI(out).Block("🛰️", title, rows)
	return nil
}
