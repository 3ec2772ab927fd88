package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/voxelgrid/chunkstore/bench/gen"
	"github.com/voxelgrid/chunkstore/bench/metrics"
	"github.com/voxelgrid/chunkstore/chunk"
	"github.com/voxelgrid/chunkstore/store"
)

// Stage C: concurrent random lookups against a prebuilt store.
func runStageC(opts stageOpts) {
	const chunkCount = 20_000
	const totalRequests = 100_000
	const seed = 34567

	concurrencies := []int{1, 4, 8, 16, 32}
	if opts.workers > 0 {
		concurrencies = []int{opts.workers}
	}

	dir, err := os.MkdirTemp("", "chunkstore-bench-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	s, err := store.Open(filepath.Join(dir, "index.bin"), filepath.Join(dir, "chunks.bin"), nil)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	fmt.Printf("stage c: building %d chunk store...\n", chunkCount)
	coords := gen.Coordinates(chunkCount, int16(opts.radius), seed)
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

	var rows []metrics.StageCRow
	for _, concurrency := range concurrencies {
		fmt.Printf("stage c: %d workers\n", concurrency)

		var wg sync.WaitGroup
		durations := make([]time.Duration, totalRequests)
		reqPerWorker := totalRequests / concurrency
		start := time.Now()
		for c := 0; c < concurrency; c++ {
			wg.Add(1)
			go func(worker int) {
				defer wg.Done()
				base := worker * reqPerWorker
				for i := 0; i < reqPerWorker && base+i < totalRequests; i++ {
					coord := coords[(base+i)%len(coords)]
					t1 := time.Now()
					if _, err := s.Get(coord); err != nil {
						panic(err)
					}
					durations[base+i] = time.Since(t1)
				}
			}(c)
		}
		wg.Wait()
		elapsed := time.Since(start).Seconds()

		stats := metrics.LatencyStatsFromDurations(durations)
		qps := float64(totalRequests) / elapsed
		ratio := 1.0
		if stats.P50Ms > 0 {
			ratio = stats.P99Ms / stats.P50Ms
		}

		snap := metrics.Take()
		rows = append(rows, metrics.StageCRow{
			Concurrency:  concurrency,
			ChunkCount:   chunkCount,
			QPS:          qps,
			GetP50Ms:     stats.P50Ms,
			GetP99Ms:     stats.P99Ms,
			NumGoroutine: snap.NumGoroutine,
			P99P50Ratio:  ratio,
		})
		fmt.Printf("  QPS=%.0f P50=%.3fms P99=%.3fms P99/P50=%.2f goroutines=%d\n",
			qps, stats.P50Ms, stats.P99Ms, ratio, snap.NumGoroutine)
	}

	path := metrics.ReportPath("bench_report_stage_c_")
	if err := metrics.WriteStageCCSV(rows, path); err != nil {
		panic(err)
	}
	fmt.Printf("report written to %s\n", path)
}
