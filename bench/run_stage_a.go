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

// Stage A: sequential chunk creation followed by random lookups, over a
// sweep of store sizes.
func runStageA(opts stageOpts) {
	counts := []int{1_000, 5_000, 10_000}
	const seed = 12345

	var rows []metrics.StageARow
	for _, count := range counts {
		fmt.Printf("stage a: writing %d chunks...\n", count)
		dir, err := os.MkdirTemp("", "chunkstore-bench-")
		if err != nil {
			panic(err)
		}

		s, err := store.Open(filepath.Join(dir, "index.bin"), filepath.Join(dir, "chunks.bin"), nil)
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
		if err := s.Flush(); err != nil {
			panic(err)
		}
		buildMs := float64(time.Since(t0).Nanoseconds()) / 1e6

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

		rows = append(rows, metrics.StageARow{
			ChunkCount:  count,
			BuildDurMs:  buildMs,
			GetP50Ms:    stats.P50Ms,
			GetP99Ms:    stats.P99Ms,
			HeapAllocMB: float64(snap.HeapAlloc) / (1 << 20),
		})
		fmt.Printf("  build=%.0fms get P50=%.3fms P99=%.3fms heap=%.1fMB\n",
			buildMs, stats.P50Ms, stats.P99Ms, float64(snap.HeapAlloc)/(1<<20))

		s.Close()
		os.RemoveAll(dir)
	}

	path := metrics.ReportPath("bench_report_stage_a_")
	if err := metrics.WriteStageACSV(rows, path); err != nil {
		panic(err)
	}
	fmt.Printf("report written to %s\n", path)
}
