package main

import (
	"log"

	"github.com/joho/godotenv"

	"curelab/adapters/excel"
	"curelab/ai"
	"curelab/domain/advisor"
	"curelab/domain/dataset"
	"curelab/domain/histogram"
	"curelab/internal"
	"curelab/internal/config"
	"curelab/internal/errors"
	"curelab/ui"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config (%s): %v", errors.CodeOf(err), err)
	}
	logger := internal.NewDefaultLogger()

	reader := excel.NewDataReader(cfg.Data.File, cfg.Data.OutputColumns)
	raw, err := reader.ReadRecords()
	if err != nil {
		log.Fatalf("%v", errors.Wrapf(err, "load dataset %s", cfg.Data.File))
	}
	store := dataset.NewStore(raw)
	logger.Info("loaded %d records from %s (snapshot %s)", len(store.Records), cfg.Data.File, store.SnapshotID)

	advisorEngine, err := advisor.NewEngine(store)
	if err != nil {
		// Rules for absent columns skip and fall back at evaluation.
		logger.Warn("advisor: %v", err)
	}
	histogramBuilder := histogram.NewBuilder(store, store.Extents)

	var client ai.AdviceClient
	if cfg.AdviceEnabled() {
		openai, err := ai.NewOpenAIClient(cfg.AI.OpenAIKey, cfg.AI.Timeout)
		if err != nil {
			log.Fatalf("openai client: %v", err)
		}
		client = openai
	} else {
		logger.Warn("OPENAI_API_KEY not set; AI advice endpoint will report the feature disabled")
	}

	app := ui.NewApp(ui.Config{Port: cfg.Server.Port, Model: cfg.AI.Model}, store, advisorEngine, histogramBuilder, client)
	if err := app.Serve(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
