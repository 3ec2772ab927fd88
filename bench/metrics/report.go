package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LatencyStats summarizes a latency distribution.
type LatencyStats struct {
	P50Ms float64
	P95Ms float64
	P99Ms float64
	AvgMs float64
	N     int
}

// StageARow is one row of the write-then-read stage report.
type StageARow struct {
	ChunkCount  int
	BuildDurMs  float64
	GetP50Ms    float64
	GetP99Ms    float64
	HeapAllocMB float64
}

// StageBRow is one row of the capacity scaling stage report.
type StageBRow struct {
	ChunkCount int
	BuildDurMs float64
	GetP50Ms   float64
	GetP99Ms   float64
	HeapSysMB  float64
	IndexMB    float64
	ChunksMB   float64
}

// StageCRow is one row of the concurrency stage report.
type StageCRow struct {
	Concurrency  int
	ChunkCount   int
	QPS          float64
	GetP50Ms     float64
	GetP99Ms     float64
	NumGoroutine int
	P99P50Ratio  float64
}

// StageDRow is one row of the backend comparison stage report.
type StageDRow struct {
	Backend    string
	ChunkCount int
	WriteDurMs float64
	ReadP50Ms  float64
	ReadP99Ms  float64
	OnDiskMB   float64
}

// Percentile returns the p-th percentile (0-100) of a sorted slice.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// LatencyStatsFromDurations computes P50/P95/P99 from a list of durations.
func LatencyStatsFromDurations(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}
	ms := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		ms[i] = float64(d.Nanoseconds()) / 1e6
		sum += ms[i]
	}
	for i := 0; i < len(ms); i++ {
		for j := i + 1; j < len(ms); j++ {
			if ms[j] < ms[i] {
				ms[i], ms[j] = ms[j], ms[i]
			}
		}
	}
	return LatencyStats{
		P50Ms: Percentile(ms, 50),
		P95Ms: Percentile(ms, 95),
		P99Ms: Percentile(ms, 99),
		AvgMs: sum / float64(len(ms)),
		N:     len(ms),
	}
}

// WriteStageACSV writes the write-then-read stage report.
func WriteStageACSV(rows []StageARow, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"ChunkCount", "BuildDurMs", "GetP50Ms", "GetP99Ms", "HeapAllocMB"})
	for _, r := range rows {
		w.Write([]string{
			fmt.Sprintf("%d", r.ChunkCount),
			fmt.Sprintf("%.2f", r.BuildDurMs),
			fmt.Sprintf("%.2f", r.GetP50Ms),
			fmt.Sprintf("%.2f", r.GetP99Ms),
			fmt.Sprintf("%.2f", r.HeapAllocMB),
		})
	}
	w.Flush()
	return w.Error()
}

// WriteStageBCSV writes the capacity scaling stage report.
func WriteStageBCSV(rows []StageBRow, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"ChunkCount", "BuildDurMs", "GetP50Ms", "GetP99Ms", "HeapSysMB", "IndexMB", "ChunksMB"})
	for _, r := range rows {
		w.Write([]string{
			fmt.Sprintf("%d", r.ChunkCount),
			fmt.Sprintf("%.2f", r.BuildDurMs),
			fmt.Sprintf("%.2f", r.GetP50Ms),
			fmt.Sprintf("%.2f", r.GetP99Ms),
			fmt.Sprintf("%.2f", r.HeapSysMB),
			fmt.Sprintf("%.2f", r.IndexMB),
			fmt.Sprintf("%.2f", r.ChunksMB),
		})
	}
	w.Flush()
	return w.Error()
}

// WriteStageCCSV writes the concurrency stage report.
func WriteStageCCSV(rows []StageCRow, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"Concurrency", "ChunkCount", "QPS", "GetP50Ms", "GetP99Ms", "NumGoroutine", "P99P50Ratio"})
	for _, r := range rows {
		w.Write([]string{
			fmt.Sprintf("%d", r.Concurrency),
			fmt.Sprintf("%d", r.ChunkCount),
			fmt.Sprintf("%.2f", r.QPS),
			fmt.Sprintf("%.2f", r.GetP50Ms),
			fmt.Sprintf("%.2f", r.GetP99Ms),
			fmt.Sprintf("%d", r.NumGoroutine),
			fmt.Sprintf("%.2f", r.P99P50Ratio),
		})
	}
	w.Flush()
	return w.Error()
}

// WriteStageDCSV writes the backend comparison stage report.
func WriteStageDCSV(rows []StageDRow, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"Backend", "ChunkCount", "WriteDurMs", "ReadP50Ms", "ReadP99Ms", "OnDiskMB"})
	for _, r := range rows {
		w.Write([]string{
			r.Backend,
			fmt.Sprintf("%d", r.ChunkCount),
			fmt.Sprintf("%.2f", r.WriteDurMs),
			fmt.Sprintf("%.2f", r.ReadP50Ms),
			fmt.Sprintf("%.2f", r.ReadP99Ms),
			fmt.Sprintf("%.2f", r.OnDiskMB),
		})
	}
	w.Flush()
	return w.Error()
}

// ReportDir is the report output directory.
const ReportDir = "report"

// ReportPath builds a dated report path under ReportDir.
func ReportPath(prefix string) string {
	return filepath.Join(ReportDir, prefix+time.Now().Format("20060102")+".csv")
}

// WriteJSON writes any value as an indented JSON report.
func WriteJSON(v interface{}, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
