package helper

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// importGroups splits a file's imports into the blank-line separated groups goimports keeps.
func importGroups(t *testing.T, path string) [][]string {
	t.Helper()

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	require.NoError(t, err)

	groups := [][]string{}
	lastLine := 0

	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		require.NoError(t, err)

		line := fset.Position(spec.Pos()).Line
		if len(groups) == 0 || line > lastLine+1 {
			groups = append(groups, []string{})
		}

		groups[len(groups)-1] = append(groups[len(groups)-1], importPath)
		lastLine = line
	}

	return groups
}

func TestImportGroupsAreSorted(t *testing.T) {
	root := ".."

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) != ".go" {
			return nil
		}

		for _, group := range importGroups(t, path) {
			assert.Truef(t, slices.IsSorted(group), "%s: unsorted imports %v", path, group)
		}

		return nil
	})

	require.NoError(t, err)
}
