package export

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDir materializes the serialized package under dir, creating the
// package root directory and every file beneath it.
func WriteDir(dir string, res *Result) (string, error) {
	root := filepath.Join(dir, res.Name)
	for _, f := range res.Files {
		path := filepath.Join(root, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("export: create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return "", fmt.Errorf("export: write %s: %w", path, err)
		}
	}
	return root, nil
}

// WriteZip writes the package as {Name}.zip under dir. Entries are
// stored in serialization order so the archive is reproducible.
func WriteZip(dir string, res *Result) (string, error) {
	path := filepath.Join(dir, res.Name+".zip")
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", path, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range res.Files {
		w, err := zw.Create(res.Name + "/" + f.Name)
		if err != nil {
			return "", fmt.Errorf("export: zip entry %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return "", fmt.Errorf("export: zip entry %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("export: finalize zip: %w", err)
	}
	return path, nil
}

// ReadDir loads a previously written package directory back into a
// Result, e.g. for validation or comparison of an existing submission.
func ReadDir(root string) (*Result, error) {
	res := &Result{Name: filepath.Base(root)}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		res.Files = append(res.Files, File{Name: filepath.ToSlash(rel), Data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export: read package %s: %w", root, err)
	}
	return res, nil
}
