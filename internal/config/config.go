// internal/config/config.go
//
// Runtime configuration.
//
// Sources, later ones winning:
//  1. Built-in defaults (Default).
//  2. An optional YAML file, named by SOLVER_CONFIG.
//  3. Environment variables (a .env file is loaded by main via godotenv).
//
// Environment variables:
//
//	WORD_LENGTH, TURNS, STARTER ("none" disables), HARD_MODE,
//	WORDS_ANSWERS_FILE, WORDS_AUX_FILE, WORDS_DEDUPE_STEMS, WORDS_SAMPLE,
//	DB_PATH, PORT, DAILY_SALT, SESSION_SECRET, ADMIN_PASSWORD_HASH, SIM_WORKERS

package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/evanmacbride/beat-wordle/internal/game"
	"github.com/evanmacbride/beat-wordle/internal/solver"
	"github.com/evanmacbride/beat-wordle/internal/words"
)

// Config is the full runtime configuration.
type Config struct {
	WordLength int    `yaml:"word_length"`
	Turns      int    `yaml:"turns"`
	Starter    string `yaml:"starter"`
	Hard       bool   `yaml:"hard"`

	AnswersFile string `yaml:"answers_file"`
	AuxFile     string `yaml:"aux_file"`
	DedupeStems bool   `yaml:"dedupe_stems"`
	Sample      int    `yaml:"sample"`

	DBPath            string `yaml:"db_path"`
	Port              string `yaml:"port"`
	DailySalt         string `yaml:"daily_salt"`
	SessionSecret     string `yaml:"session_secret"`
	AdminPasswordHash string `yaml:"admin_password_hash"`
	Workers           int    `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WordLength:    game.DefaultLength,
		Turns:         game.DefaultTurns,
		Starter:       string(solver.DefaultStarter),
		Hard:          true,
		DBPath:        "./data/solver.db",
		Port:          "5175",
		DailySalt:     "local_dev_salt",
		SessionSecret: "dev_secret_change_me",
		Workers:       runtime.NumCPU(),
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// not empty) and the environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// FromEnv is Load with the path taken from SOLVER_CONFIG.
func FromEnv() (Config, error) {
	return Load(os.Getenv("SOLVER_CONFIG"))
}

func (c *Config) applyEnv() error {
	var err error
	setInt := func(k string, dst *int) {
		if v := os.Getenv(k); v != "" && err == nil {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				err = fmt.Errorf("config: %s=%q: %w", k, v, perr)
				return
			}
			*dst = n
		}
	}
	setBool := func(k string, dst *bool) {
		if v := os.Getenv(k); v != "" && err == nil {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = fmt.Errorf("config: %s=%q: %w", k, v, perr)
				return
			}
			*dst = b
		}
	}
	setStr := func(k string, dst *string) {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}

	setInt("WORD_LENGTH", &c.WordLength)
	setInt("TURNS", &c.Turns)
	setStr("STARTER", &c.Starter)
	setBool("HARD_MODE", &c.Hard)
	setStr("WORDS_ANSWERS_FILE", &c.AnswersFile)
	setStr("WORDS_AUX_FILE", &c.AuxFile)
	setBool("WORDS_DEDUPE_STEMS", &c.DedupeStems)
	setInt("WORDS_SAMPLE", &c.Sample)
	setStr("DB_PATH", &c.DBPath)
	setStr("PORT", &c.Port)
	setStr("DAILY_SALT", &c.DailySalt)
	setStr("SESSION_SECRET", &c.SessionSecret)
	setStr("ADMIN_PASSWORD_HASH", &c.AdminPasswordHash)
	setInt("SIM_WORKERS", &c.Workers)
	return err
}

// Validate checks ranges and the starter word.
func (c Config) Validate() error {
	if c.WordLength <= 0 {
		return fmt.Errorf("config: word_length must be positive, got %d", c.WordLength)
	}
	if c.Turns <= 0 {
		return fmt.Errorf("config: turns must be positive, got %d", c.Turns)
	}
	if c.Sample < 0 {
		return fmt.Errorf("config: sample must not be negative, got %d", c.Sample)
	}
	if _, err := ParseStarter(c.Starter, c.WordLength); err != nil {
		return fmt.Errorf("config: starter: %w", err)
	}
	return nil
}

// ParseStarter normalises a starter option. "", "none" and "None" disable
// the starter.
func ParseStarter(s string, n int) (game.Word, error) {
	if s == "" || strings.EqualFold(s, "none") {
		return "", nil
	}
	return game.ParseWord(s, n)
}

// Solver returns the solver settings.
func (c Config) Solver() solver.Config {
	starter, _ := ParseStarter(c.Starter, c.WordLength)
	return solver.Config{
		Length:  c.WordLength,
		Turns:   c.Turns,
		Starter: starter,
		Hard:    c.Hard,
	}
}

// Words returns the corpus options.
func (c Config) Words() words.Options {
	return words.Options{
		Length:      c.WordLength,
		AnswersFile: c.AnswersFile,
		AuxFile:     c.AuxFile,
		DedupeStems: c.DedupeStems,
		Sample:      c.Sample,
	}
}
