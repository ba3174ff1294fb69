package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
)

// SettingsFilePattern matches settings stream files inside a directory
// given as input.
const SettingsFilePattern = "settings*"

// DocumentExtensions are the extensions of migrated documents. Expansion
// of directories and globs never returns such files, so a second run over
// the same tree does not pick up the first run's output.
var DocumentExtensions = []string{".toml", ".json"}

// ResolveInputs takes user-provided paths and globs and returns matching
// files in a stable order without duplicates.
//
// A directory contributes every file matching SettingsFilePattern beneath
// it. A glob contributes every regular file it matches. Migrated documents
// are skipped in both cases. Any other argument must name an existing
// file. "-" stands for stdin and is passed through.
func ResolveInputs(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, kerrors.ErrNoInputs
	}

	return files, nil
}

func resolvePattern(pattern string) ([]string, error) {
	if pattern == "-" {
		return []string{pattern}, nil
	}

	info, err := os.Stat(pattern)
	if err == nil && info.IsDir() {
		return expandGlob(filepath.Join(pattern, "**", SettingsFilePattern))
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(pattern)
	}

	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrInputNotFound, pattern)
		}
		return nil, err
	}
	return []string{filepath.Clean(pattern)}, nil
}

func expandGlob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() || isDocument(m) {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

func isDocument(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(DocumentExtensions, ext)
}

// CommonDir returns the deepest directory containing every path. "-" is
// ignored. It returns "" when no path is left.
func CommonDir(paths []string) string {
	sep := string(filepath.Separator)
	var common []string
	found := false

	for _, p := range paths {
		if p == "-" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		parts := strings.Split(filepath.Dir(abs), sep)
		if !found {
			common, found = parts, true
			continue
		}
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}

	if !found {
		return ""
	}
	dir := strings.Join(common, sep)
	if !strings.Contains(dir, sep) {
		// filesystem root: "" on Unix, a volume name on Windows
		dir += sep
	}
	return dir
}

// OutputPath returns where the document for input is written.
//
// An empty dir places it next to the input. Otherwise the input's path
// relative to root is kept under dir, so inputs sharing a file name in
// different directories get different documents. root is normally
// CommonDir of all inputs. Stdin maps to "stdin.<ext>".
func OutputPath(input, root, dir, ext string) string {
	if input == "-" {
		return filepath.Join(dir, "stdin."+ext)
	}
	if dir == "" {
		return input + "." + ext
	}

	name := filepath.Base(input)
	if abs, err := filepath.Abs(input); err == nil && root != "" {
		if rel, err := filepath.Rel(root, abs); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			name = rel
		}
	}
	return filepath.Join(dir, name+"."+ext)
}
