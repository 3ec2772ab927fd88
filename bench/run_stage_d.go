package main

import (
	"encoding/binary"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/voxelgrid/chunkstore/bench/gen"
	"github.com/voxelgrid/chunkstore/bench/metrics"
	"github.com/voxelgrid/chunkstore/chunk"
	"github.com/voxelgrid/chunkstore/chunkdir"
	"github.com/voxelgrid/chunkstore/spatial"
	"github.com/voxelgrid/chunkstore/store"
)

// Stage D: the tree-indexed store against a directory of chunk files and a
// general-purpose LSM store, on the same workload.
func runStageD(opts stageOpts) {
	const chunkCount = 10_000
	const seed = 45678

	coords := gen.Coordinates(chunkCount, int16(opts.radius), seed)
	payloads := make([]*chunk.Chunk, len(coords))
	for i, coord := range coords {
		payloads[i] = gen.Payload(coord, seed)
	}

	var rows []metrics.StageDRow
	rows = append(rows, runTreeBackend(coords, payloads))
	rows = append(rows, runDirBackend(coords, payloads))
	rows = append(rows, runLevelDBBackend(coords, payloads))

	path := metrics.ReportPath("bench_report_stage_d_")
	if err := metrics.WriteStageDCSV(rows, path); err != nil {
		panic(err)
	}
	fmt.Printf("report written to %s\n", path)
}

func runTreeBackend(coords []spatial.ChunkCoordinate, payloads []*chunk.Chunk) metrics.StageDRow {
	fmt.Println("stage d: tree store")
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

	t0 := time.Now()
	for i, coord := range coords {
		h, err := s.GetOrCreate(coord)
		if err != nil {
			panic(err)
		}
		payload := payloads[i]
		h.Update(func(c *chunk.Chunk) {
			copy(c.Blocks(), payload.Blocks())
		})
		if err := s.Save(h); err != nil {
			panic(err)
		}
	}
	if err := s.SyncChunks(); err != nil {
		panic(err)
	}
	writeMs := float64(time.Since(t0).Nanoseconds()) / 1e6

	durations := make([]time.Duration, len(coords))
	for i, coord := range coords {
		t1 := time.Now()
		if _, err := s.Get(coord); err != nil {
			panic(err)
		}
		durations[i] = time.Since(t1)
	}
	return backendRow("tree", writeMs, durations, dir)
}

func runDirBackend(coords []spatial.ChunkCoordinate, payloads []*chunk.Chunk) metrics.StageDRow {
	fmt.Println("stage d: chunk directory (snappy)")
	dir, err := os.MkdirTemp("", "chunkstore-bench-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	d, err := chunkdir.Open(dir, &chunkdir.Options{Compression: chunkdir.SnappyCompression})
	if err != nil {
		panic(err)
	}

	t0 := time.Now()
	for _, payload := range payloads {
		if err := d.Save(payload); err != nil {
			panic(err)
		}
	}
	writeMs := float64(time.Since(t0).Nanoseconds()) / 1e6

	durations := make([]time.Duration, len(coords))
	for i, coord := range coords {
		t1 := time.Now()
		if _, err := d.Get(coord); err != nil {
			panic(err)
		}
		durations[i] = time.Since(t1)
	}
	return backendRow("chunkdir", writeMs, durations, dir)
}

func runLevelDBBackend(coords []spatial.ChunkCoordinate, payloads []*chunk.Chunk) metrics.StageDRow {
	fmt.Println("stage d: leveldb")
	dir, err := os.MkdirTemp("", "chunkstore-bench-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	buf := make([]byte, chunk.PayloadBytes)
	t0 := time.Now()
	for i, coord := range coords {
		if err := payloads[i].EncodeBlocks(buf); err != nil {
			panic(err)
		}
		if err := db.Put(levelKey(coord), buf, nil); err != nil {
			panic(err)
		}
	}
	writeMs := float64(time.Since(t0).Nanoseconds()) / 1e6

	durations := make([]time.Duration, len(coords))
	for i, coord := range coords {
		t1 := time.Now()
		if _, err := db.Get(levelKey(coord), nil); err != nil {
			panic(err)
		}
		durations[i] = time.Since(t1)
	}
	return backendRow("leveldb", writeMs, durations, dir)
}

func levelKey(coord spatial.ChunkCoordinate) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(spatial.PackCoordinate(coord)))
	return b[:]
}

func backendRow(name string, writeMs float64, durations []time.Duration, dir string) metrics.StageDRow {
	stats := metrics.LatencyStatsFromDurations(durations)
	row := metrics.StageDRow{
		Backend:    name,
		ChunkCount: len(durations),
		WriteDurMs: writeMs,
		ReadP50Ms:  stats.P50Ms,
		ReadP99Ms:  stats.P99Ms,
		OnDiskMB:   dirMB(dir),
	}
	fmt.Printf("  write=%.0fms read P50=%.3fms P99=%.3fms disk=%.1fMB\n",
		row.WriteDurMs, row.ReadP50Ms, row.ReadP99Ms, row.OnDiskMB)
	return row
}

func dirMB(dir string) float64 {
	var total int64
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return float64(total) / (1 << 20)
}
