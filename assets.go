package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
)

// isLocalName reports whether a slash separated name from a data file stays
// inside the directory it is resolved against.
func isLocalName(name string) bool {
	return filepath.IsLocal(filepath.FromSlash(name))
}

// copyItemAssets copies everything in the item directory except its metadata
// and body into dest, overwriting existing files.
func copyItemAssets(it Item, dest string) error {
	skip := newSet(filepath.Join(it.Dir, cardFileName), filepath.Join(it.Dir, contentFileName))
	opt := copy.Options{
		Skip: func(_ os.FileInfo, src, _ string) (bool, error) {
			return skip.has(src), nil
		},
	}
	if err := copy.Copy(it.Dir, dest, opt); err != nil {
		return fsError(dest, err)
	}
	return nil
}

// copySectionAssets copies a section data directory into dest, leaving out
// the JSON files at its top level.
func copySectionAssets(src, dest string) error {
	opt := copy.Options{
		Skip: func(info os.FileInfo, path, _ string) (bool, error) {
			return !info.IsDir() && filepath.Dir(path) == filepath.Clean(src) && filepath.Ext(path) == ".json", nil
		},
	}
	if err := copy.Copy(src, dest, opt); err != nil {
		return fsError(dest, err)
	}
	return nil
}

// copyFile copies a single file, creating the parent directories of dest.
func copyFile(src, dest string) error {
	if err := copy.Copy(src, dest); err != nil {
		return fsError(dest, err)
	}
	return nil
}

// copyStaticFiles copies srcDir recursively to dest. A missing srcDir is not
// an error.
func copyStaticFiles(srcDir, dest string) error {
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		slog.Debug("No static files", logPath(srcDir))
		return nil
	}
	slog.Info("Recursively copying", "from", srcDir, "to", dest)
	if err := copy.Copy(srcDir, dest); err != nil {
		return fsError(dest, err)
	}
	return nil
}
