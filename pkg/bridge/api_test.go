package bridge

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// fakeAPI records every REST call the bridge makes so tests can assert on
// exactly what would hit Discord.
type fakeAPI struct {
	channels      map[string]*discordgo.Channel
	threadMembers map[string][]*discordgo.ThreadMember
	permissions   map[string]int64

	channelErr       error
	threadMembersErr error
	permissionsErr   error
	sendErr          error
	startThreadErr   error
	editErr          error
	respondErr       error

	sent          []fakeMessage
	threadsOpened []fakeThreadStart
	edits         []fakeEdit
	responses     []fakeResponse

	nextID int
}

type fakeMessage struct {
	channelID string
	content   string
	data      *discordgo.MessageSend
}

type fakeThreadStart struct {
	channelID string
	messageID string
	name      string
	threadID  string
}

type fakeEdit struct {
	channelID string
	edit      *discordgo.ChannelEdit
}

type fakeResponse struct {
	interaction *discordgo.Interaction
	response    *discordgo.InteractionResponse
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		channels:      make(map[string]*discordgo.Channel),
		threadMembers: make(map[string][]*discordgo.ThreadMember),
		permissions:   make(map[string]int64),
	}
}

func (f *fakeAPI) Channel(channelID string) (*discordgo.Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	return ch, nil
}

func (f *fakeAPI) SendMessage(channelID, content string) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, fakeMessage{channelID: channelID, content: content})
	f.nextID++
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", f.nextID), ChannelID: channelID}, nil
}

func (f *fakeAPI) SendMessageComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, fakeMessage{channelID: channelID, content: data.Content, data: data})
	f.nextID++
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", f.nextID), ChannelID: channelID}, nil
}

func (f *fakeAPI) StartThread(channelID, messageID, name string) (*discordgo.Channel, error) {
	if f.startThreadErr != nil {
		return nil, f.startThreadErr
	}
	f.nextID++
	threadID := fmt.Sprintf("thread-%d", f.nextID)
	f.threadsOpened = append(f.threadsOpened, fakeThreadStart{
		channelID: channelID,
		messageID: messageID,
		name:      name,
		threadID:  threadID,
	})
	return &discordgo.Channel{
		ID:       threadID,
		Name:     name,
		Type:     discordgo.ChannelTypeGuildPublicThread,
		ParentID: channelID,
	}, nil
}

func (f *fakeAPI) EditChannel(channelID string, edit *discordgo.ChannelEdit) (*discordgo.Channel, error) {
	if f.editErr != nil {
		return nil, f.editErr
	}
	f.edits = append(f.edits, fakeEdit{channelID: channelID, edit: edit})
	return &discordgo.Channel{ID: channelID}, nil
}

func (f *fakeAPI) ThreadMembers(threadID string) ([]*discordgo.ThreadMember, error) {
	if f.threadMembersErr != nil {
		return nil, f.threadMembersErr
	}
	return f.threadMembers[threadID], nil
}

func (f *fakeAPI) UserChannelPermissions(userID, channelID string) (int64, error) {
	if f.permissionsErr != nil {
		return 0, f.permissionsErr
	}
	return f.permissions[userID], nil
}

func (f *fakeAPI) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	if f.respondErr != nil {
		return f.respondErr
	}
	f.responses = append(f.responses, fakeResponse{interaction: interaction, response: resp})
	return nil
}

// messagesTo filters recorded sends by destination channel.
func (f *fakeAPI) messagesTo(channelID string) []fakeMessage {
	var out []fakeMessage
	for _, m := range f.sent {
		if m.channelID == channelID {
			out = append(out, m)
		}
	}
	return out
}
