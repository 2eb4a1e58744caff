package nbappend

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/output"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/parser"
)

// defaultFileMode is used when the notebook mode cannot be determined.
const defaultFileMode os.FileMode = 0o644

// Result describes a completed append run.
type Result struct {
	// Path is the notebook path that was updated.
	Path string
	// Before is the number of cells read from the notebook.
	Before int
	// Added is the number of template cells appended.
	Added int
	// After is the number of cells in the updated notebook.
	After int
	// Original is the notebook as read, re-indented like Document.
	Original []byte
	// Document is the updated notebook as written (or as it would be on a dry run).
	Document []byte
	// Written reports whether Document was persisted.
	Written bool
}

// Load reads and parses the notebook at path.
func Load(fs afero.Fs, path string) (*parser.Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, NewNotebookError(path, ErrNotFound, err)
		}
		return nil, NewNotebookError(path, ErrRead, err)
	}

	doc, err := parser.ParseNotebook(data)
	if err != nil {
		return nil, NewNotebookError(path, ErrParse, err)
	}

	log.Debug().Str("path", path).Int("cells", doc.Len()).Int("bytes", len(data)).Msg("loaded notebook")
	return doc, nil
}

// Append reads the notebook at path, appends the template cells after all
// existing cells and writes the document back to the same path.
// Running it twice appends the cells twice.
func Append(fs afero.Fs, path string, opts Options) (*Result, error) {
	indent := opts.IndentWidth()
	if indent < 0 {
		return nil, fmt.Errorf("invalid indent %d (must be >= 0)", indent)
	}

	doc, err := Load(fs, path)
	if err != nil {
		return nil, err
	}

	tmpl := opts.CellTemplate()
	if err := tmpl.Validate(); err != nil {
		return nil, NewNotebookError(path, ErrTemplate, err)
	}
	cells := tmpl.Build()

	original, err := output.Format(doc.Bytes(), indent)
	if err != nil {
		return nil, NewNotebookError(path, ErrParse, err)
	}

	before := doc.Len()
	if err := doc.Append(cells...); err != nil {
		return nil, NewNotebookError(path, ErrTemplate, err)
	}
	log.Debug().Str("path", path).Int("added", len(cells)).Int("cells", doc.Len()).Msg("appended cells")

	updated, err := output.Format(doc.Bytes(), indent)
	if err != nil {
		return nil, NewNotebookError(path, ErrParse, err)
	}

	result := &Result{
		Path:     path,
		Before:   before,
		Added:    len(cells),
		After:    doc.Len(),
		Original: original,
		Document: updated,
	}

	if opts.DryRun {
		log.Debug().Str("path", path).Msg("dry run, notebook not written")
		return result, nil
	}

	if err := persist(fs, path, updated, opts.Atomic); err != nil {
		return nil, NewNotebookError(path, ErrWrite, err)
	}
	result.Written = true
	log.Debug().Str("path", path).Int("bytes", len(updated)).Bool("atomic", opts.Atomic).Msg("wrote notebook")

	return result, nil
}

// persist writes data to path keeping the existing file mode.
func persist(fs afero.Fs, path string, data []byte, atomic bool) error {
	mode := defaultFileMode
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if !atomic {
		return afero.WriteFile(fs, path, data, mode)
	}
	return writeAtomic(fs, path, data, mode)
}

// writeAtomic writes to a temporary sibling file and renames it over path,
// so readers see either the old or the new document.
func writeAtomic(fs afero.Fs, path string, data []byte, mode os.FileMode) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return err
	}
	if err := fs.Chmod(tmpName, mode); err != nil {
		fs.Remove(tmpName)
		return err
	}
	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return err
	}
	return nil
}
