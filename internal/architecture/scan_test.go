// Where: vmm/internal/architecture/scan_test.go
// What: Shared source walker for architecture guard tests.
// Why: Parse every non-test file under internal/ once per guard with the same filters.
package architecture

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const internalImportPrefix = "github.com/poruru-code/vmm-cli/internal/"

type sourceFile struct {
	rel  string
	fset *token.FileSet
	ast  *ast.File
}

func (f sourceFile) pkg() string {
	return filepath.ToSlash(filepath.Dir(f.rel))
}

func (f sourceFile) imports() []string {
	out := make([]string, 0, len(f.ast.Imports))
	for _, imp := range f.ast.Imports {
		out = append(out, strings.Trim(imp.Path.Value, "\""))
	}
	return out
}

func walkSources(t *testing.T, mode parser.Mode, visit func(sourceFile)) {
	t.Helper()

	internalRoot := resolveInternalRoot(t)
	fset := token.NewFileSet()
	err := filepath.WalkDir(internalRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(internalRoot, path)
		if err != nil {
			return err
		}
		file, err := parser.ParseFile(fset, path, nil, mode)
		if err != nil {
			return err
		}
		visit(sourceFile{rel: rel, fset: fset, ast: file})
		return nil
	})
	if err != nil {
		t.Fatalf("scan internal packages: %v", err)
	}
}

func resolveInternalRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Clean(filepath.Join(wd, ".."))
}
