package bridge

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vclink-bot/vclink/pkg/linkage"
)

func newTestWorkflow() (*RenameWorkflow, *fakeAPI, *linkage.Registry) {
	api := newFakeAPI()
	registry := linkage.NewRegistry()
	return NewRenameWorkflow(api, registry), api, registry
}

func buttonInteraction(threadID, userID string) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: threadID,
		Member:    &discordgo.Member{User: &discordgo.User{ID: userID}},
		Data:      discordgo.MessageComponentInteractionData{CustomID: RenameButtonID},
	}
}

func modalInteraction(threadID, userID, value string) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type:      discordgo.InteractionModalSubmit,
		ChannelID: threadID,
		Member:    &discordgo.Member{User: &discordgo.User{ID: userID}},
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: RenameModalID,
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						&discordgo.TextInput{CustomID: RenameInputID, Value: value},
					},
				},
			},
		},
	}
}

func linkVoiceChannel(api *fakeAPI, registry *linkage.Registry) {
	registry.Insert("vc-1", "thread-1")
	api.channels["vc-1"] = &discordgo.Channel{
		ID:      "vc-1",
		GuildID: "guild-1",
		Name:    "Karaoke",
		Type:    discordgo.ChannelTypeGuildVoice,
	}
}

func requireEphemeral(t *testing.T, resp fakeResponse) *discordgo.InteractionResponseData {
	t.Helper()
	require.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.response.Type)
	require.NotNil(t, resp.response.Data)
	require.Equal(t, discordgo.MessageFlagsEphemeral, resp.response.Data.Flags)
	return resp.response.Data
}

func TestHandleButtonUnlinkedThread(t *testing.T) {
	workflow, api, _ := newTestWorkflow()

	require.NoError(t, workflow.HandleButton(buttonInteraction("thread-1", "u1")))

	require.Len(t, api.responses, 1)
	data := requireEphemeral(t, api.responses[0])
	assert.Contains(t, data.Content, "no longer exists")
}

func TestHandleButtonUnauthorized(t *testing.T) {
	workflow, api, registry := newTestWorkflow()
	linkVoiceChannel(api, registry)
	// u1 has no manage-channels bit

	require.NoError(t, workflow.HandleButton(buttonInteraction("thread-1", "u1")))

	require.Len(t, api.responses, 1)
	data := requireEphemeral(t, api.responses[0])
	assert.Contains(t, data.Content, "owner")
	assert.Empty(t, api.edits)
}

func TestHandleButtonOpensModal(t *testing.T) {
	workflow, api, registry := newTestWorkflow()
	linkVoiceChannel(api, registry)
	api.permissions["u1"] = discordgo.PermissionManageChannels

	require.NoError(t, workflow.HandleButton(buttonInteraction("thread-1", "u1")))

	require.Len(t, api.responses, 1)
	resp := api.responses[0].response
	require.Equal(t, discordgo.InteractionResponseModal, resp.Type)
	require.NotNil(t, resp.Data)
	assert.Equal(t, RenameModalID, resp.Data.CustomID)

	require.Len(t, resp.Data.Components, 1)
	row, ok := resp.Data.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 1)
	input, ok := row.Components[0].(discordgo.TextInput)
	require.True(t, ok)
	assert.Equal(t, RenameInputID, input.CustomID)
	assert.Equal(t, discordgo.TextInputShort, input.Style)
}

func TestHandleModalUnlinkedThread(t *testing.T) {
	workflow, api, _ := newTestWorkflow()

	require.NoError(t, workflow.HandleModal(modalInteraction("thread-1", "u1", "New Name")))

	require.Len(t, api.responses, 1)
	data := requireEphemeral(t, api.responses[0])
	assert.Contains(t, data.Content, "no longer exists")
	assert.Empty(t, api.edits)
}

func TestHandleModalUnauthorized(t *testing.T) {
	workflow, api, registry := newTestWorkflow()
	linkVoiceChannel(api, registry)

	require.NoError(t, workflow.HandleModal(modalInteraction("thread-1", "u1", "New Name")))

	require.Len(t, api.responses, 1)
	data := requireEphemeral(t, api.responses[0])
	assert.Contains(t, data.Content, "owner")
	assert.Empty(t, api.edits)
}

func TestHandleModalRenamesVoiceChannel(t *testing.T) {
	workflow, api, registry := newTestWorkflow()
	linkVoiceChannel(api, registry)
	api.permissions["u1"] = discordgo.PermissionManageChannels

	require.NoError(t, workflow.HandleModal(modalInteraction("thread-1", "u1", "Movie Night")))

	require.Len(t, api.edits, 1)
	assert.Equal(t, "vc-1", api.edits[0].channelID)
	assert.Equal(t, "Movie Night", api.edits[0].edit.Name)

	require.Len(t, api.responses, 1)
	data := requireEphemeral(t, api.responses[0])
	assert.Contains(t, data.Content, "✅")
}

func TestHandleModalMissingInput(t *testing.T) {
	workflow, api, registry := newTestWorkflow()
	linkVoiceChannel(api, registry)
	api.permissions["u1"] = discordgo.PermissionManageChannels

	interaction := &discordgo.Interaction{
		Type:      discordgo.InteractionModalSubmit,
		ChannelID: "thread-1",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "u1"}},
		Data:      discordgo.ModalSubmitInteractionData{CustomID: RenameModalID},
	}

	err := workflow.HandleModal(interaction)
	require.Error(t, err)
	assert.Empty(t, api.edits)
}

func TestHandleModalPermissionNotCachedFromButton(t *testing.T) {
	workflow, api, registry := newTestWorkflow()
	linkVoiceChannel(api, registry)
	api.permissions["u1"] = discordgo.PermissionManageChannels

	require.NoError(t, workflow.HandleButton(buttonInteraction("thread-1", "u1")))

	// Permission revoked between button press and modal submit
	api.permissions["u1"] = 0

	require.NoError(t, workflow.HandleModal(modalInteraction("thread-1", "u1", "New Name")))

	assert.Empty(t, api.edits)
	require.Len(t, api.responses, 2)
	data := requireEphemeral(t, api.responses[1])
	assert.Contains(t, data.Content, "owner")
}
