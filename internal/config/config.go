package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Name of the environment variable holding the bot credential
const tokenEnv = "DISCORD_BOT_TOKEN"

// A roster member: a community player with a role description and the
// emoji the bot reacts with on their behalf
type Member struct {
	Name  string `mapstructure:"name"`
	Role  string `mapstructure:"role"`
	Emoji string `mapstructure:"emoji"`
}

// Config is loaded once at startup and never mutated afterwards
type Config struct {
	Token            string
	Prefix           string
	MainCycle        time.Duration
	SummaryTimeout   time.Duration
	ReactionRequests int
	ReactionWindow   time.Duration
	ReactionCooldown time.Duration
	Roster           []Member
}

// Load reads the configuration file and the bot token from
// the environment
func Load(filename string) (Config, error) {

	v := viper.New()
	v.SetConfigFile(filename)

	v.SetDefault("prefix", "!raid")
	v.SetDefault("main_cycle", "5s")
	v.SetDefault("summary_timeout", "1h")
	v.SetDefault("reactions.requests", 1)
	v.SetDefault("reactions.window", "500ms")
	v.SetDefault("reactions.cooldown", "10s")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("could not read config file %s: %w", filename, err)
	}

	var cfg Config
	cfg.Prefix = v.GetString("prefix")
	cfg.MainCycle = v.GetDuration("main_cycle")
	cfg.SummaryTimeout = v.GetDuration("summary_timeout")
	cfg.ReactionRequests = v.GetInt("reactions.requests")
	cfg.ReactionWindow = v.GetDuration("reactions.window")
	cfg.ReactionCooldown = v.GetDuration("reactions.cooldown")
	if err := v.UnmarshalKey("roster", &cfg.Roster); err != nil {
		return Config{}, fmt.Errorf("could not decode roster: %w", err)
	}

	// Roster names have to be unique, they key the emoji mapping
	seen := map[string]struct{}{}
	for _, member := range cfg.Roster {
		if member.Name == "" {
			return Config{}, fmt.Errorf("roster member without a name in %s", filename)
		}
		if _, ok := seen[member.Name]; ok {
			return Config{}, fmt.Errorf("duplicate roster member %s in %s", member.Name, filename)
		}
		seen[member.Name] = struct{}{}
	}

	cfg.Token = os.Getenv(tokenEnv)
	if cfg.Token == "" {
		return Config{}, fmt.Errorf("%s environment variable not set", tokenEnv)
	}

	return cfg, nil
}

// Emojis returns the reaction emojis in roster order,
// skipping members that do not declare one
func (cfg *Config) Emojis() []string {
	emojis := make([]string, 0, len(cfg.Roster))
	for _, member := range cfg.Roster {
		if member.Emoji != "" {
			emojis = append(emojis, member.Emoji)
		}
	}
	return emojis
}
