package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

func (f Factory) checkFile(spec Spec) error {
	switch {
	case f.NoFiles:
		return fmt.Errorf("%w: %s files are disabled", ErrUnsupported, spec.Kind)
	case f.DataDir != "" && !filepath.IsLocal(spec.File):
		return fmt.Errorf("%w: %s", ErrForbiddenPath, spec.File)
	}
	return nil
}

// openFile opens name, inside dir when dir is set. Symlinks may not leave dir.
func openFile(dir, name string) (*os.File, error) {
	if dir == "" {
		return os.Open(name)
	}
	if !filepath.IsLocal(name) {
		return nil, fmt.Errorf("%w: %s", ErrForbiddenPath, name)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	defer root.Close()
	return root.Open(name)
}

// CSV reads a comma separated file with a header line. Reader, when set,
// is used instead of Path. Dir confines Path.
type CSV struct {
	Path   string
	Dir    string
	Reader io.Reader
}

// Fetch implements Source.
func (c *CSV) Fetch(context.Context) (*Table, error) {
	r := c.Reader
	if r == nil {
		f, err := openFile(c.Dir, c.Path)
		if err != nil {
			return nil, fmt.Errorf("unable to open %s: %w", c.Path, err)
		}
		defer f.Close()
		r = f
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{Columns: []string{}, Rows: nil}, nil
	}
	return textRows(records[0], records[1:]), nil
}

// Excel reads one sheet of a workbook, the first when Sheet is empty. The
// first row holds the column names. Dir confines Path.
type Excel struct {
	Path   string
	Dir    string
	Reader io.Reader
	Sheet  string
}

// Fetch implements Source.
func (e *Excel) Fetch(context.Context) (*Table, error) {
	var (
		f   *excelize.File
		err error
	)
	switch {
	case e.Reader != nil:
		f, err = excelize.OpenReader(e.Reader)
	case e.Dir != "":
		var file *os.File
		if file, err = openFile(e.Dir, e.Path); err == nil {
			defer file.Close()
			f, err = excelize.OpenReader(file)
		}
	default:
		f, err = excelize.OpenFile(e.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook: %w", err)
	}
	defer f.Close()

	sheet := e.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %s: %w", sheet, err)
	}
	if len(records) == 0 {
		return &Table{Columns: []string{}, Rows: nil}, nil
	}
	return textRows(records[0], records[1:]), nil
}
