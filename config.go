package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
)

const (
	modeLine = "line"
	modeTUI  = "tui"
	modeSSH  = "ssh"
)

type Config struct {
	Mode     string
	SSHPort  int
	HTTPPort string // serves the WebSocket to SSH proxy when set
	Local    bool
	Secret   string // Secret Manager version holding the SSH host key
	Seed     uint64
	Layout   string
	FEN      string
	LogLevel log.Level
}

// loadConfig parses command-line flags, falling back to the environment for
// the settings that deployments usually inject.
func loadConfig(args []string, getenv func(string) string) (Config, error) {
	fs := flag.NewFlagSet("raychess", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		mode     = fs.String("mode", envOr(getenv, "RAYCHESS_MODE", modeLine), "session mode: line, tui or ssh")
		sshPort  = fs.Int("port", 2222, "SSH server port")
		local    = fs.Bool("local", false, "run in local mode (generates/uses local host key instead of Secret Manager)")
		seed     = fs.String("seed", envOr(getenv, "RAYCHESS_SEED", "0"), "random seed; 0 picks one")
		layout   = fs.String("layout", "", "initial board as a 64 character layout")
		fen      = fs.String("fen", "", "initial board as a FEN record")
		logLevel = fs.String("log-level", envOr(getenv, "LOG_LEVEL", "info"), "log level")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	cfg := Config{
		Mode:     *mode,
		SSHPort:  *sshPort,
		HTTPPort: getenv("PORT"),
		Local:    *local,
		Secret:   getenv("SSH_HOST_KEY_SECRET"),
		Layout:   *layout,
		FEN:      *fen,
	}

	switch cfg.Mode {
	case modeLine, modeTUI, modeSSH:
	default:
		return Config{}, fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	s, err := strconv.ParseUint(*seed, 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid seed %q: %w", *seed, err)
	}
	cfg.Seed = s

	if cfg.FEN != "" && cfg.Layout != "" {
		return Config{}, errors.New("-fen and -layout are mutually exclusive")
	}
	if cfg.FEN == "" && cfg.Layout == "" {
		cfg.Layout = StandardLayout
	}

	lvl, err := log.ParseLevel(*logLevel)
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}
	cfg.LogLevel = lvl

	return cfg, nil
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// initialBoard builds the starting board described by cfg.
func (cfg Config) initialBoard() (Board, error) {
	if cfg.FEN != "" {
		return ParseFEN(cfg.FEN)
	}
	return ParseBoard(cfg.Layout), nil
}
