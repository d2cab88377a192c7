package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// FlexibleStringSlice is a []string that also accepts JSON numbers, so
// ignored_channel_ids can contain both "123" and 123 (Discord snowflakes
// are frequently pasted as raw numbers).
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	// Try []string first
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*f = ss
		return nil
	}

	// Try []interface{} to handle mixed types
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	result := make([]string, 0, len(raw))
	for _, v := range raw {
		switch val := v.(type) {
		case string:
			result = append(result, val)
		case float64:
			result = append(result, fmt.Sprintf("%.0f", val))
		default:
			result = append(result, fmt.Sprintf("%v", val))
		}
	}
	*f = result
	return nil
}

// Contains reports whether id is present in the slice.
func (f FlexibleStringSlice) Contains(id string) bool {
	for _, v := range f {
		if v == id {
			return true
		}
	}
	return false
}

type DiscordConfig struct {
	Token             string              `json:"token" env:"VCLINK_DISCORD_TOKEN"`
	VoiceCategoryID   string              `json:"voice_category_id" env:"VCLINK_DISCORD_VOICE_CATEGORY_ID"`
	AnnounceChannelID string              `json:"announce_channel_id" env:"VCLINK_DISCORD_ANNOUNCE_CHANNEL_ID"`
	IgnoredChannelIDs FlexibleStringSlice `json:"ignored_channel_ids" env:"VCLINK_DISCORD_IGNORED_CHANNEL_IDS"`
}

type LogConfig struct {
	Level string `json:"level" env:"VCLINK_LOG_LEVEL"`
	File  string `json:"file" env:"VCLINK_LOG_FILE"`
}

type Config struct {
	Discord DiscordConfig `json:"discord"`
	Log     LogConfig     `json:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Discord: DiscordConfig{
			Token:             "",
			VoiceCategoryID:   "",
			AnnounceChannelID: "",
			IgnoredChannelIDs: FlexibleStringSlice{},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the fields required to reach Discord are present.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("discord.token is not set")
	}
	if c.Discord.VoiceCategoryID == "" {
		return fmt.Errorf("discord.voice_category_id is not set")
	}
	if c.Discord.AnnounceChannelID == "" {
		return fmt.Errorf("discord.announce_channel_id is not set")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Env overrides still apply to a missing file
			if err := env.Parse(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
