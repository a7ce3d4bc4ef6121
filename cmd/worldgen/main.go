// Command worldgen pre-generates a square region of chunks in parallel and
// writes its heightmap as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
	"github.com/OCharnyshevich/blockgrid/pkg/world/gen"
)

func main() {
	var (
		seed    = flag.Int64("seed", 42, "world seed")
		kind    = flag.String("generator", gen.KindOverworld, "generator (overworld, flat, end, outer_end)")
		x       = flag.Int("x", 0, "center block x")
		z       = flag.Int("z", 0, "center block z")
		radius  = flag.Int("radius", 16, "region radius in chunks")
		workers = flag.Int("workers", runtime.NumCPU(), "parallel chunk fills")
		out     = flag.String("o", "heightmap.png", "output PNG path")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(log, *kind, *seed, *x, *z, *radius, *workers, *out); err != nil {
		log.Error("worldgen failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, kind string, seed int64, x, z, radius, workers int, out string) error {
	if radius < 0 {
		return fmt.Errorf("radius must not be negative, got %d", radius)
	}
	if workers < 1 {
		workers = 1
	}
	g, err := gen.New(kind, seed)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	center := chunk.PosOf(x, z)
	r := newRegion(center.X, center.Z, radius)

	start := time.Now()
	log.Info("generating", "generator", kind, "seed", seed, "chunks", r.size*r.size, "workers", workers)
	if err := r.generate(ctx, g, workers); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	log.Info("generated", "took", time.Since(start))

	for _, b := range r.biomes(g) {
		log.Info("biome", "name", b.Name, "columns", b.Columns)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := png.Encode(f, r.image()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	log.Info("heightmap written", "path", out)
	return nil
}
