package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"harvest-planner/game"
)

const traceSchema = "plan_trace_v1"

// TraceRow is one planned step with the state it leads to.
type TraceRow struct {
	Plan      string `parquet:"plan,dict" json:"plan"`
	Index     int32  `parquet:"index" json:"index"`
	Action    string `parquet:"action" json:"action"`
	Kind      string `parquet:"kind,dict" json:"kind"`
	K         int32  `parquet:"k" json:"k"`
	Resource  int32  `parquet:"resource" json:"resource"`
	Gold      int32  `parquet:"gold" json:"gold"`
	Wood      int32  `parquet:"wood" json:"wood"`
	Workers   int32  `parquet:"workers" json:"workers"`
	Carrying  int32  `parquet:"carrying" json:"carrying"`
	Cost      int32  `parquet:"cost" json:"cost"`
	Heuristic int32  `parquet:"heuristic" json:"heuristic"`
	Depth     int32  `parquet:"depth" json:"depth"`
	Bounded   bool   `parquet:"bounded" json:"bounded"`
}

// TraceRows flattens a plan, one row per step.
func TraceRows(name string, plan *game.Plan) []TraceRow {
	rows := make([]TraceRow, 0, plan.Len())
	for _, step := range plan.Steps {
		s := step.State
		carrying := 0
		for _, p := range s.Peasants {
			if p.Carrying() {
				carrying++
			}
		}
		rows = append(rows, TraceRow{
			Plan:      name,
			Index:     int32(step.Index),
			Action:    step.Action.String(),
			Kind:      step.Action.Kind.String(),
			K:         int32(step.Action.K),
			Resource:  int32(step.Action.Resource),
			Gold:      int32(s.Gold),
			Wood:      int32(s.Wood),
			Workers:   int32(len(s.Peasants)),
			Carrying:  int32(carrying),
			Cost:      int32(s.Cost),
			Heuristic: int32(s.Heuristic),
			Depth:     int32(s.Depth),
			Bounded:   plan.Bounded,
		})
	}
	return rows
}

// WriteTrace writes the plan to <outDir>/<name>.parquet and returns the path.
func WriteTrace(outDir, name string, plan *game.Plan) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	finalPath := filepath.Join(outDir, name+".parquet")
	tmpPath := finalPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, TraceRows(name, plan),
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", traceSchema),
		parquet.KeyValueMetadata("goal", plan.Goal.String()),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}

	return finalPath, nil
}

// ReadTrace loads every row of a trace file.
func ReadTrace(path string) ([]TraceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[TraceRow](pf)
	defer reader.Close()

	total := reader.NumRows()
	if total == 0 {
		return nil, nil
	}
	rows := make([]TraceRow, total)
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows[:n], nil
}
