package bridge

import (
	"github.com/bwmarrin/discordgo"
)

// API is the slice of Discord's REST surface the bridge touches. The real
// implementation wraps *discordgo.Session; tests substitute a fake so no
// network is involved.
type API interface {
	Channel(channelID string) (*discordgo.Channel, error)
	SendMessage(channelID, content string) (*discordgo.Message, error)
	SendMessageComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	StartThread(channelID, messageID, name string) (*discordgo.Channel, error)
	EditChannel(channelID string, edit *discordgo.ChannelEdit) (*discordgo.Channel, error)
	ThreadMembers(threadID string) ([]*discordgo.ThreadMember, error)
	UserChannelPermissions(userID, channelID string) (int64, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

const threadAutoArchiveMinutes = 1440

type sessionAPI struct {
	session *discordgo.Session
}

func newSessionAPI(session *discordgo.Session) *sessionAPI {
	return &sessionAPI{session: session}
}

func (a *sessionAPI) Channel(channelID string) (*discordgo.Channel, error) {
	return a.session.Channel(channelID)
}

func (a *sessionAPI) SendMessage(channelID, content string) (*discordgo.Message, error) {
	return a.session.ChannelMessageSend(channelID, content)
}

func (a *sessionAPI) SendMessageComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return a.session.ChannelMessageSendComplex(channelID, data)
}

func (a *sessionAPI) StartThread(channelID, messageID, name string) (*discordgo.Channel, error) {
	return a.session.MessageThreadStartComplex(channelID, messageID, &discordgo.ThreadStart{
		Name:                name,
		Type:                discordgo.ChannelTypeGuildPublicThread,
		AutoArchiveDuration: threadAutoArchiveMinutes,
	})
}

func (a *sessionAPI) EditChannel(channelID string, edit *discordgo.ChannelEdit) (*discordgo.Channel, error) {
	return a.session.ChannelEdit(channelID, edit)
}

func (a *sessionAPI) ThreadMembers(threadID string) ([]*discordgo.ThreadMember, error) {
	return a.session.ThreadMembers(threadID, 100, false, "")
}

func (a *sessionAPI) UserChannelPermissions(userID, channelID string) (int64, error) {
	return a.session.UserChannelPermissions(userID, channelID)
}

func (a *sessionAPI) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return a.session.InteractionRespond(interaction, resp)
}
