package bridge

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/vclink-bot/vclink/pkg/config"
	"github.com/vclink-bot/vclink/pkg/linkage"
)

// Shown in place of a channel name when the channel can no longer be read.
const unknownChannelName = "unknown channel"

// ThreadLifecycle creates, renames and archives companion threads, keeping
// the link registry in step with what exists on Discord.
type ThreadLifecycle struct {
	api      API
	registry *linkage.Registry
	cfg      config.DiscordConfig
}

func NewThreadLifecycle(api API, registry *linkage.Registry, cfg config.DiscordConfig) *ThreadLifecycle {
	return &ThreadLifecycle{
		api:      api,
		registry: registry,
		cfg:      cfg,
	}
}

// CreateOrAnnounce handles a member appearing in a managed voice channel.
// The first join creates the companion thread; later joins post a greeting
// in the existing thread unless the member is already in it. A concurrent
// first join that loses the reservation is dropped.
func (l *ThreadLifecycle) CreateOrAnnounce(voiceChannelID string, member *discordgo.Member) error {
	threadID, reserved := l.registry.Reserve(voiceChannelID)
	if !reserved {
		if threadID == "" {
			// Another event is mid-creation and will post the welcome.
			return nil
		}
		return l.announceJoin(threadID, member)
	}

	if err := l.createThread(voiceChannelID, member); err != nil {
		l.registry.Release(voiceChannelID)
		return err
	}
	return nil
}

func (l *ThreadLifecycle) announceJoin(threadID string, member *discordgo.Member) error {
	members, err := l.api.ThreadMembers(threadID)
	if err != nil {
		return fmt.Errorf("failed to fetch thread members: %w", err)
	}

	for _, m := range members {
		if m.UserID == member.User.ID {
			return nil
		}
	}

	content := fmt.Sprintf("%s has joined.", member.Mention())
	if _, err := l.api.SendMessage(threadID, content); err != nil {
		return fmt.Errorf("failed to post join announcement: %w", err)
	}
	return nil
}

func (l *ThreadLifecycle) createThread(voiceChannelID string, member *discordgo.Member) error {
	name := l.channelName(voiceChannelID)

	// The announcement message is the thread's anchor, so it must exist
	// before the thread, and the thread before the registry entry.
	announce, err := l.api.SendMessageComplex(l.cfg.AnnounceChannelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("%s started a new voice channel.\nJoin the call → <#%s>", member.Mention(), voiceChannelID),
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to post creation announcement: %w", err)
	}

	thread, err := l.api.StartThread(l.cfg.AnnounceChannelID, announce.ID, name)
	if err != nil {
		return fmt.Errorf("failed to create companion thread: %w", err)
	}

	pointer := fmt.Sprintf("Voice chat thread → <#%s>", thread.ID)
	if _, err := l.api.SendMessage(voiceChannelID, pointer); err != nil {
		return fmt.Errorf("failed to post thread pointer in voice chat: %w", err)
	}

	welcome := fmt.Sprintf("%s welcome to `%s`.\nGive the channel a catchy name to pull people in!", member.Mention(), name)
	if _, err := l.api.SendMessageComplex(thread.ID, &discordgo.MessageSend{
		Content: welcome,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "📝 Rename channel",
						Style:    discordgo.SuccessButton,
						CustomID: RenameButtonID,
					},
				},
			},
		},
	}); err != nil {
		return fmt.Errorf("failed to post welcome message: %w", err)
	}

	l.registry.Insert(voiceChannelID, thread.ID)
	return nil
}

// Archive marks the companion thread archived when its voice channel is
// deleted. The registry entry is left in place: a voice channel that
// somehow reused the ID would still resolve to the dead thread.
func (l *ThreadLifecycle) Archive(voiceChannelID string) error {
	threadID, ok := l.registry.ThreadFor(voiceChannelID)
	if !ok {
		return nil
	}

	archived := true
	if _, err := l.api.EditChannel(threadID, &discordgo.ChannelEdit{Archived: &archived}); err != nil {
		return fmt.Errorf("failed to archive thread: %w", err)
	}
	return nil
}

// Rename applies the voice channel's current name to its companion thread.
func (l *ThreadLifecycle) Rename(voiceChannelID string) error {
	threadID, ok := l.registry.ThreadFor(voiceChannelID)
	if !ok {
		return nil
	}

	name := l.channelName(voiceChannelID)
	if _, err := l.api.EditChannel(threadID, &discordgo.ChannelEdit{Name: name}); err != nil {
		return fmt.Errorf("failed to rename thread: %w", err)
	}
	return nil
}

func (l *ThreadLifecycle) channelName(channelID string) string {
	ch, err := l.api.Channel(channelID)
	if err != nil || ch == nil || ch.Name == "" {
		return unknownChannelName
	}
	return ch.Name
}
