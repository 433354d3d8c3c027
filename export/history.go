// Package export writes run artifacts: per-generation history as parquet and
// the terrain with the best flight as a PNG plot
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/lixenwraith/mars-lander/genetic/tracking"
)

// historySchema tags the file layout in the parquet key/value metadata
const historySchema = "generation_history_v1"

// HistoryRow is one generation's statistics
type HistoryRow struct {
	Level      string  `parquet:"level,dict"`
	Generation int32   `parquet:"generation"`
	Best       float64 `parquet:"best"`
	Average    float64 `parquet:"average"`
	Worst      float64 `parquet:"worst"`
	BestEver   float64 `parquet:"best_ever"`
	Solutions  int32   `parquet:"solutions"`
	Crashed    int32   `parquet:"crashed"`
	Escaped    int32   `parquet:"escaped"`
	Expired    int32   `parquet:"expired"`
	AvgFuel    float64 `parquet:"avg_fuel"`
	ElapsedNs  int64   `parquet:"elapsed_ns"`
}

func toRow(levelName string, r tracking.Report) HistoryRow {
	return HistoryRow{
		Level:      levelName,
		Generation: int32(r.Generation),
		Best:       r.Best,
		Average:    r.Average,
		Worst:      r.Worst,
		BestEver:   r.BestEver,
		Solutions:  int32(r.Solutions),
		Crashed:    int32(r.Crashed),
		Escaped:    int32(r.Escaped),
		Expired:    int32(r.Expired),
		AvgFuel:    r.AvgFuel,
		ElapsedNs:  r.Elapsed.Nanoseconds(),
	}
}

func (row HistoryRow) report() tracking.Report {
	return tracking.Report{
		Generation: int(row.Generation),
		Best:       row.Best,
		Average:    row.Average,
		Worst:      row.Worst,
		BestEver:   row.BestEver,
		Solutions:  int(row.Solutions),
		Crashed:    int(row.Crashed),
		Escaped:    int(row.Escaped),
		Expired:    int(row.Expired),
		AvgFuel:    row.AvgFuel,
		Elapsed:    time.Duration(row.ElapsedNs),
	}
}

// WriteHistory writes reports to outPath, replacing any existing file
func WriteHistory(outPath, levelName string, reports []tracking.Report) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rows := make([]HistoryRow, len(reports))
	for i, r := range reports {
		rows[i] = toRow(levelName, r)
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", historySchema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadHistory loads reports written by WriteHistory
func ReadHistory(path string) ([]tracking.Report, error) {
	rows, err := parquet.ReadFile[HistoryRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}

	reports := make([]tracking.Report, len(rows))
	for i, row := range rows {
		reports[i] = row.report()
	}
	return reports, nil
}
