package bridge

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/vclink-bot/vclink/pkg/linkage"
)

// Custom IDs forming the wire contract with messages already posted to
// Discord. Interactions issued before a restart still carry them, so they
// must never change.
const (
	RenameButtonID = "rename_button"
	RenameModalID  = "rename_title"
	RenameInputID  = "rename_text"
)

// RenameWorkflow is the two-step button → modal flow that lets a voice
// channel's manager rename it from inside the companion thread. The flow
// keeps no state between the two steps: each interaction re-resolves the
// voice channel from the thread it arrived in and re-checks permissions.
type RenameWorkflow struct {
	api      API
	registry *linkage.Registry
}

func NewRenameWorkflow(api API, registry *linkage.Registry) *RenameWorkflow {
	return &RenameWorkflow{
		api:      api,
		registry: registry,
	}
}

// HandleButton answers a press of the rename button with either the rename
// modal or an ephemeral refusal.
func (w *RenameWorkflow) HandleButton(interaction *discordgo.Interaction) error {
	vc, err := w.resolveVoice(interaction.ChannelID)
	if err != nil {
		return w.respondEphemeral(interaction, "❌ That voice channel no longer exists.")
	}

	allowed, err := w.canManage(interaction, vc.ID)
	if err != nil {
		return fmt.Errorf("failed to compute channel permissions: %w", err)
	}
	if !allowed {
		return w.respondEphemeral(interaction, "❌ Only the voice channel's owner can rename it.")
	}

	return w.openModal(interaction)
}

// HandleModal applies a submitted rename. Resolution and authorization are
// repeated from scratch; nothing is trusted from the button step.
func (w *RenameWorkflow) HandleModal(interaction *discordgo.Interaction) error {
	vc, err := w.resolveVoice(interaction.ChannelID)
	if err != nil {
		return w.respondEphemeral(interaction, "❌ That voice channel no longer exists.")
	}

	allowed, err := w.canManage(interaction, vc.ID)
	if err != nil {
		return fmt.Errorf("failed to compute channel permissions: %w", err)
	}
	if !allowed {
		return w.respondEphemeral(interaction, "❌ Only the voice channel's owner can rename it.")
	}

	name, ok := submittedName(interaction)
	if !ok {
		return fmt.Errorf("rename input %q not found in modal submission", RenameInputID)
	}

	if _, err := w.api.EditChannel(vc.ID, &discordgo.ChannelEdit{Name: name}); err != nil {
		return fmt.Errorf("failed to rename voice channel: %w", err)
	}

	return w.respondEphemeral(interaction, "✅ Channel renamed.")
}

// resolveVoice maps the thread an interaction came from back to its voice
// channel and fetches the channel's current state.
func (w *RenameWorkflow) resolveVoice(threadID string) (*discordgo.Channel, error) {
	voiceID, ok := w.registry.VoiceFor(threadID)
	if !ok {
		return nil, fmt.Errorf("no voice channel linked to thread %s", threadID)
	}

	ch, err := w.api.Channel(voiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch voice channel: %w", err)
	}
	if ch.GuildID == "" {
		return nil, fmt.Errorf("channel %s is not a guild channel", voiceID)
	}
	return ch, nil
}

func (w *RenameWorkflow) canManage(interaction *discordgo.Interaction, channelID string) (bool, error) {
	userID := interactionUserID(interaction)
	if userID == "" {
		return false, nil
	}

	perms, err := w.api.UserChannelPermissions(userID, channelID)
	if err != nil {
		return false, err
	}
	return perms&discordgo.PermissionManageChannels != 0, nil
}

func (w *RenameWorkflow) openModal(interaction *discordgo.Interaction) error {
	err := w.api.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: RenameModalID,
			Title:    "✏️ Rename channel",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    RenameInputID,
							Label:       "What's this call about?",
							Placeholder: "gaming, karaoke, movie night, ...",
							Style:       discordgo.TextInputShort,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to open rename modal: %w", err)
	}
	return nil
}

func (w *RenameWorkflow) respondEphemeral(interaction *discordgo.Interaction, content string) error {
	err := w.api.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to respond to interaction: %w", err)
	}
	return nil
}

// submittedName digs the rename input's value out of a modal submission.
func submittedName(interaction *discordgo.Interaction) (string, bool) {
	data := interaction.ModalSubmitData()
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			input, ok := component.(*discordgo.TextInput)
			if ok && input.CustomID == RenameInputID {
				return input.Value, true
			}
		}
	}
	return "", false
}

func interactionUserID(interaction *discordgo.Interaction) string {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User.ID
	}
	if interaction.User != nil {
		return interaction.User.ID
	}
	return ""
}
