package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/engine-server/assets"
	"github.com/robalobadob/wordle/apps/engine-server/internal/config"
	"github.com/robalobadob/wordle/apps/engine-server/internal/database"
	"github.com/robalobadob/wordle/apps/engine-server/internal/httpserver"
	"github.com/robalobadob/wordle/apps/engine-server/internal/store"
	"github.com/robalobadob/wordle/apps/engine-server/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	lex, err := words.Load(words.Files{AnswersFile: cfg.AnswersFile, AllowedFile: cfg.AllowedFile})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	answers, allowed := lex.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("open database")
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Lexicon:  lex,
		Sessions: store.NewMemoryStore(),
		DB:       db,
		Logger:   log.Logger,
	})
	log.Info().Str("port", cfg.Port).Msg("starting engine-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
