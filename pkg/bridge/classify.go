package bridge

import (
	"github.com/bwmarrin/discordgo"

	"github.com/vclink-bot/vclink/pkg/config"
)

// IsManagedVoice reports whether ch is a voice channel this bot manages:
// a guild voice channel parented under the configured category and not on
// the ignore list. A channel without a parent is simply unmanaged, never
// an error.
func IsManagedVoice(ch *discordgo.Channel, cfg config.DiscordConfig) bool {
	if ch == nil || ch.Type != discordgo.ChannelTypeGuildVoice {
		return false
	}

	if ch.ParentID == "" || ch.ParentID != cfg.VoiceCategoryID {
		return false
	}

	return !cfg.IgnoredChannelIDs.Contains(ch.ID)
}
