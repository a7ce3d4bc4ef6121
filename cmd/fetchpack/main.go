// Command fetchpack downloads a block pack (a blocks.yaml plus its atlas
// image) from any go-getter source and checks the definitions load.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
)

func main() {
	var (
		src = flag.String("src", "", "pack source, e.g. git::https://example.com/packs.git//default")
		out = flag.String("o", "./packs/default", "output dir path")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := fetch(log, *src, *out); err != nil {
		log.Error("fetch pack", "error", err)
		os.Exit(1)
	}
}

func fetch(log *slog.Logger, src, out string) error {
	if src == "" {
		return errors.New("source required")
	}
	if out == "" {
		return errors.New("output dir path required")
	}

	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("clear %s: %w", out, err)
	}

	log.Info("downloading pack", "src", src, "dst", out)
	if err := get.Get(out, src); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	reg, err := verify(filepath.Join(out, "blocks.yaml"))
	if err != nil {
		return err
	}
	log.Info("pack ready", "dst", out, "blocks", reg.Len(),
		"atlasCols", reg.Atlas().Cols, "atlasRows", reg.Atlas().Rows)
	return nil
}

// verify loads the pack's block definitions.
func verify(path string) (*block.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open definitions: %w", err)
	}
	defer f.Close()

	reg, err := block.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}
