// Package config resolves runtime settings from the environment, with
// an optional .env file loaded from the working directory.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-level settings. Command-line flags take
// precedence over these values.
type Config struct {
	ScriptsDir    string // HABLA_SCRIPTS_DIR, default "."
	Voice         string // HABLA_VOICE, synthesizer voice name
	SayCommand    string // HABLA_SAY, speech binary override
	OpenCommand   string // HABLA_OPEN, image viewer override
	PlayerCommand string // HABLA_PLAYER, audio player override
}

// Load reads an optional .env file and the HABLA_* environment
// variables. A missing .env file is not an error.
func Load() Config {
	godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{ScriptsDir: "."}
	if dir := getenv("HABLA_SCRIPTS_DIR"); dir != "" {
		cfg.ScriptsDir = dir
	}
	cfg.Voice = getenv("HABLA_VOICE")
	cfg.SayCommand = getenv("HABLA_SAY")
	cfg.OpenCommand = getenv("HABLA_OPEN")
	cfg.PlayerCommand = getenv("HABLA_PLAYER")
	return cfg
}
