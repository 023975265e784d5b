package adapter

import (
	"encoding/json"
	"fmt"

	m "github.com/mouse-blink/xform/internal/model"
)

// ReportStore persists and retrieves run summaries.
type ReportStore interface {
	SaveResults(path m.Path, results []m.Result) error
	LoadResults(path m.Path) ([]m.Result, error)
}

type reportStore struct {
	fs SourceFSAdapter
}

// NewReportStore constructs a ReportStore that writes JSON through fs.
func NewReportStore(fs SourceFSAdapter) ReportStore {
	return &reportStore{fs: fs}
}

func (rs *reportStore) SaveResults(path m.Path, results []m.Result) error {
	if results == nil {
		results = []m.Result{}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := rs.fs.WriteFile(path, append(data, '\n')); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

func (rs *reportStore) LoadResults(path m.Path) ([]m.Result, error) {
	data, err := rs.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	var results []m.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	return results, nil
}
