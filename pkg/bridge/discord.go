// Package bridge links ephemeral voice channels to persistent companion
// threads: it watches gateway events for a configured category of "custom"
// voice channels, creates and announces a thread for each one on first
// join, keeps the thread's name and archival state in step with the voice
// channel, and serves the in-thread rename workflow.
package bridge

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/vclink-bot/vclink/pkg/config"
	"github.com/vclink-bot/vclink/pkg/linkage"
	"github.com/vclink-bot/vclink/pkg/logger"
)

// Bridge owns the Discord session and routes gateway events to the thread
// lifecycle and the rename workflow. Every handler invocation runs on its
// own goroutine (discordgo dispatches asynchronously); the link registry
// is the only state shared between them.
type Bridge struct {
	session   *discordgo.Session
	api       API
	cfg       config.DiscordConfig
	registry  *linkage.Registry
	lifecycle *ThreadLifecycle
	rename    *RenameWorkflow

	mu      sync.Mutex
	running bool
}

func New(cfg config.DiscordConfig) (*Bridge, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return newBridge(session, newSessionAPI(session), cfg), nil
}

func newBridge(session *discordgo.Session, api API, cfg config.DiscordConfig) *Bridge {
	registry := linkage.NewRegistry()
	return &Bridge{
		session:   session,
		api:       api,
		cfg:       cfg,
		registry:  registry,
		lifecycle: NewThreadLifecycle(api, registry, cfg),
		rename:    NewRenameWorkflow(api, registry),
	}
}

func (b *Bridge) Start() error {
	logger.InfoC("discord", "Starting VC bridge")

	b.session.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildVoiceStates

	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleInteractionCreate)
	b.session.AddHandler(b.handleChannelDelete)
	b.session.AddHandler(b.handleChannelUpdate)
	b.session.AddHandler(b.handleVoiceStateUpdate)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	b.setRunning(true)
	return nil
}

func (b *Bridge) Stop() error {
	logger.InfoC("discord", "Stopping VC bridge")
	b.setRunning(false)

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	return nil
}

func (b *Bridge) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

func (b *Bridge) setRunning(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.running = v
}

func (b *Bridge) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	logger.InfoCF("discord", "Bot ready", map[string]any{
		"username": r.User.Username,
		"user_id":  r.User.ID,
	})
}

// handleInteractionCreate routes interactions by their fixed custom IDs.
// Anything else is not ours and is ignored.
func (b *Bridge) handleInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	switch {
	case i.Type == discordgo.InteractionMessageComponent && i.MessageComponentData().CustomID == RenameButtonID:
		if err := b.rename.HandleButton(i.Interaction); err != nil {
			logger.ErrorCF("discord", "Failed to handle rename button", map[string]any{
				"channel_id": i.ChannelID,
				"error":      err.Error(),
			})
		}
	case i.Type == discordgo.InteractionModalSubmit && i.ModalSubmitData().CustomID == RenameModalID:
		if err := b.rename.HandleModal(i.Interaction); err != nil {
			logger.ErrorCF("discord", "Failed to handle rename submission", map[string]any{
				"channel_id": i.ChannelID,
				"error":      err.Error(),
			})
		}
	}
}

func (b *Bridge) handleChannelDelete(_ *discordgo.Session, e *discordgo.ChannelDelete) {
	if !IsManagedVoice(e.Channel, b.cfg) {
		return
	}

	if err := b.lifecycle.Archive(e.Channel.ID); err != nil {
		logger.ErrorCF("discord", "Failed to archive companion thread", map[string]any{
			"voice_channel_id": e.Channel.ID,
			"error":            err.Error(),
		})
	}
}

func (b *Bridge) handleChannelUpdate(_ *discordgo.Session, e *discordgo.ChannelUpdate) {
	if !IsManagedVoice(e.Channel, b.cfg) {
		return
	}

	if err := b.lifecycle.Rename(e.Channel.ID); err != nil {
		logger.ErrorCF("discord", "Failed to rename companion thread", map[string]any{
			"voice_channel_id": e.Channel.ID,
			"error":            err.Error(),
		})
	}
}

func (b *Bridge) handleVoiceStateUpdate(_ *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	// Leaves and mute changes carry no channel or no member; only joins
	// and moves matter here.
	if e.ChannelID == "" || e.Member == nil {
		return
	}

	ch, err := b.api.Channel(e.ChannelID)
	if err != nil {
		logger.ErrorCF("discord", "Failed to fetch voice channel", map[string]any{
			"channel_id": e.ChannelID,
			"error":      err.Error(),
		})
		return
	}

	if !IsManagedVoice(ch, b.cfg) {
		return
	}

	if err := b.lifecycle.CreateOrAnnounce(e.ChannelID, e.Member); err != nil {
		logger.ErrorCF("discord", "Failed to create or announce companion thread", map[string]any{
			"voice_channel_id": e.ChannelID,
			"error":            err.Error(),
		})
	}
}
