package main

import (
	"flag"
	"os"
	"time"

	"raidbot/internal/bot"
	"raidbot/internal/config"
	"raidbot/internal/registry"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configFile := flag.String("config", "raidbot.yml", "path to the configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	setupLogger(*debug)

	// Load the configuration, including the bot token from the environment
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	// Create the raid registry. Its contents live and die with the process
	reg := registry.NewRegistry()

	// Create and run the bot
	raidbot := bot.NewBot(cfg, reg)
	log.Info().Msg("Starting raidbot")
	if err := raidbot.Run(); err != nil {
		log.Fatal().Err(err).Msg("Bot stopped with an error")
	}
}

func setupLogger(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()
}
