package sweep

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions is the set of file extensions recognized as C/C++
// sources and headers.
var DefaultExtensions = []string{".c", ".cc", ".cpp", ".cxx", ".h", ".hh", ".hpp", ".hxx"}

// skipDirs are directory names excluded from enumeration. VCS metadata
// never holds project sources worth trialing.
var skipDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// EnumerateSources walks root recursively and returns the paths of files
// whose extension is in extensions, relative to root, in lexical walk order.
// The order is deterministic, which fixes the discovery order of verdicts.
func EnumerateSources(root string, extensions []string) ([]string, error) {
	lowered := make([]string, len(extensions))
	for i, ext := range extensions {
		lowered[i] = strings.ToLower(ext)
	}

	var files []string

	walkErr := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			return err
		}

		if entry.IsDir() {
			if skipDirs[entry.Name()] {
				return filepath.SkipDir
			}

			return nil
		}

		if !slices.Contains(lowered, strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		files = append(files, rel)

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	return files, nil
}
