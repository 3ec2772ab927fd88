package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/voxelgrid/chunkstore/bench/gen"
	"github.com/voxelgrid/chunkstore/bench/metrics"
	"github.com/voxelgrid/chunkstore/chunk"
	"github.com/voxelgrid/chunkstore/store"
)

// Stage B: capacity scaling. Builds stores of growing size, reopens them
// cold and measures lookup latency plus on-disk and memory footprint.
func runStageB(opts stageOpts) {
	counts := []int{10_000, 25_000, 50_000}
	const seed = 23456

	var rows []metrics.StageBRow
	for _, count := range counts {
		fmt.Printf("stage b: building %d chunk store...\n", count)
		dir, err := os.MkdirTemp("", "chunkstore-bench-")
		if err != nil {
			panic(err)
		}
		indexPath := filepath.Join(dir, "index.bin")
		chunkPath := filepath.Join(dir, "chunks.bin")

		s, err := store.Open(indexPath, chunkPath, nil)
		if err != nil {
			panic(err)
		}
		coords := gen.Coordinates(count, int16(opts.radius), seed)

		t0 := time.Now()
		for _, coord := range coords {
			h, err := s.GetOrCreate(coord)
			if err != nil {
				panic(err)
			}
			payload := gen.Payload(coord, seed)
			h.Update(func(c *chunk.Chunk) {
				copy(c.Blocks(), payload.Blocks())
			})
			if err := s.Save(h); err != nil {
				panic(err)
			}
		}
		buildMs := float64(time.Since(t0).Nanoseconds()) / 1e6
		if err := s.Close(); err != nil {
			panic(err)
		}

		// Cold reopen: every lookup walks the on-disk index.
		s, err = store.Open(indexPath, chunkPath, nil)
		if err != nil {
			panic(err)
		}
		metrics.GC()
		durations := make([]time.Duration, count)
		for i, coord := range coords {
			t1 := time.Now()
			if _, err := s.Get(coord); err != nil {
				panic(err)
			}
			durations[i] = time.Since(t1)
		}
		stats := metrics.LatencyStatsFromDurations(durations)
		snap := metrics.Take()

		rows = append(rows, metrics.StageBRow{
			ChunkCount: count,
			BuildDurMs: buildMs,
			GetP50Ms:   stats.P50Ms,
			GetP99Ms:   stats.P99Ms,
			HeapSysMB:  float64(snap.HeapSys) / (1 << 20),
			IndexMB:    fileMB(indexPath),
			ChunksMB:   fileMB(chunkPath),
		})
		fmt.Printf("  build=%.0fms get P50=%.3fms P99=%.3fms index=%.1fMB chunks=%.1fMB\n",
			buildMs, stats.P50Ms, stats.P99Ms, fileMB(indexPath), fileMB(chunkPath))

		s.Close()
		os.RemoveAll(dir)
	}

	path := metrics.ReportPath("bench_report_stage_b_")
	if err := metrics.WriteStageBCSV(rows, path); err != nil {
		panic(err)
	}
	fmt.Printf("report written to %s\n", path)
}

func fileMB(path string) float64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return float64(info.Size()) / (1 << 20)
}
