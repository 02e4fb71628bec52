package excel

import (
	"context"
	"path/filepath"

	"salesboard/domain/sales"
	"salesboard/internal/errors"
)

// FileSource loads the combined sales table from a local CSV/XLSX file.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed table source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name identifies the source in logs and status views.
func (s *FileSource) Name() string {
	return filepath.Base(s.path)
}

// Fetch reads and normalizes the file into a sales table.
func (s *FileSource) Fetch(ctx context.Context) (*sales.Table, error) {
	data, err := NewDataReader(s.path).ReadData()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load data file %s", s.path)
	}

	records, err := sales.ParseRecords(data.Headers, data.Rows, "")
	if err != nil {
		return nil, err
	}

	return sales.NewTable(records), nil
}
