package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antbee-trainer/internal/config"
	"antbee-trainer/internal/dataset"
	"antbee-trainer/internal/model"
	"antbee-trainer/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	trainDir := flag.String("train-dir", "", "Training split root (ants/ and bees/ subdirs)")
	valDir := flag.String("val-dir", "", "Validation split root (ants/ and bees/ subdirs)")
	epochs := flag.Int("epochs", 0, "Number of training epochs")
	numWorkers := flag.Int("num-workers", 0, "Number of feature-extraction workers")
	seed := flag.Int64("seed", 0, "PRNG seed (0 means time-based)")
	logEvery := flag.Int("log-every", 0, "Report every N epochs")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(config.Overrides{
		TrainDir:   *trainDir,
		ValDir:     *valDir,
		Epochs:     *epochs,
		NumWorkers: *numWorkers,
		Seed:       *seed,
		LogEvery:   *logEvery,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	runSeed := cfg.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(runSeed))

	train, err := dataset.Build(cfg.TrainDir, dataset.BuildOptions{RNG: rng, NumWorkers: cfg.NumWorkers})
	if err != nil {
		log.Fatalf("build training dataset: %v", err)
	}
	val, err := dataset.Build(cfg.ValDir, dataset.BuildOptions{RNG: rng, NumWorkers: cfg.NumWorkers})
	if err != nil {
		log.Fatalf("build validation dataset: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mdl := model.NewLogistic(rng)

	runCfg := trainer.RunConfig{
		Epochs:   cfg.Epochs,
		LogEvery: cfg.LogEvery,
	}
	if err := trainer.Run(ctx, mdl, train, val, runCfg); err != nil {
		log.Fatalf("training failed: %v", err)
	}

	acc, err := mdl.Evaluate(val)
	if err != nil {
		log.Fatalf("final evaluation: %v", err)
	}
	log.Printf("test accuracy=%.2f%%", acc*100)
}
