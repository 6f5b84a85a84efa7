/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Seednode/scribble/room"
)

type Config struct {
	bind           string
	chatBurst      int
	chatRate       float64
	chooseTimeout  time.Duration
	debug          bool
	maxMessageSize int64
	port           int
	prefix         string
	profile        bool
	roundTimeout   time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
	words          string

	logger zerolog.Logger
	pool   *room.WordPool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.chooseTimeout < 0 || c.roundTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if c.chatRate <= 0 || c.chatBurst < 1 {
		return fmt.Errorf("invalid chat limit (rate %v, burst %d): both must be positive", c.chatRate, c.chatBurst)
	}
	if c.maxMessageSize < 1 {
		return fmt.Errorf("invalid max message size: %d", c.maxMessageSize)
	}

	var err error
	if c.words != "" {
		c.pool, err = room.LoadWords(c.words)
	} else {
		c.pool, err = room.NewWordPool(room.DefaultWords)
	}
	if err != nil {
		return fmt.Errorf("word list: %w", err)
	}

	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// loadEnvFile exports variables from a dotenv file, if one exists.
// Variables already set in the environment win.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SCRIBBLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "scribble",
		Short:         "A single-room drawing and guessing game server.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			cfg.logger = newLogger(cmd.OutOrStdout(), cfg.verbose, cfg.debug)
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SCRIBBLE_BIND)")
	fs.IntVar(&cfg.chatBurst, "chat-burst", 5, "chat messages a player may send in a burst (env: SCRIBBLE_CHAT_BURST)")
	fs.Float64Var(&cfg.chatRate, "chat-rate", 2, "sustained chat messages per second per player (env: SCRIBBLE_CHAT_RATE)")
	fs.DurationVar(&cfg.chooseTimeout, "choose-timeout", 0, "time a drawer has to pick a word, 0 to wait forever (env: SCRIBBLE_CHOOSE_TIMEOUT)")
	fs.BoolVar(&cfg.debug, "debug", false, "log rejected actions and chosen words (env: SCRIBBLE_DEBUG)")
	fs.Int64Var(&cfg.maxMessageSize, "max-message-size", 64*1024, "largest websocket message accepted, in bytes (env: SCRIBBLE_MAX_MESSAGE_SIZE)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: SCRIBBLE_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: SCRIBBLE_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: SCRIBBLE_PROFILE)")
	fs.DurationVar(&cfg.roundTimeout, "round-timeout", 0, "time a drawer has to draw, 0 to wait forever (env: SCRIBBLE_ROUND_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: SCRIBBLE_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: SCRIBBLE_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: SCRIBBLE_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: SCRIBBLE_VERSION)")
	fs.StringVar(&cfg.words, "words", "", "csv file of words to draw, one per row (env: SCRIBBLE_WORDS)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("scribble v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
