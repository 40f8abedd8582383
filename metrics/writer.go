package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Writer struct {
	baseDir string
	runID   string
}

// NewWriter creates a run directory under root named by the current
// timestamp and a fresh run id.
func NewWriter(root string) (*Writer, error) {
	runID := uuid.NewString()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp+"-"+runID[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		runID:   runID,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) WriteDecisionRecords(records []DecisionMetric) error {
	path := filepath.Join(w.baseDir, "decision_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create decision records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"run", "agent", "variant", "start_time", "duration", "budget", "over_budget", "evaluations", "tie_size", "endgame"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write decision records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			w.runID,
			strconv.Itoa(record.Agent),
			record.Variant,
			record.StartTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			record.Budget.String(),
			strconv.FormatBool(record.OverBudget()),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.TieSize),
			strconv.FormatBool(record.Endgame),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write decision record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush decision records: %w", err)
	}
	return nil
}
