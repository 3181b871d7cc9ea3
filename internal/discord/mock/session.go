// Package mock provides a recording Discord session for tests.
package mock

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Session records every call and returns the configured error.
type Session struct {
	mu sync.Mutex

	// Messages maps channel IDs to the embed batches sent there.
	Messages map[string][][]*discordgo.MessageEmbed
	// Threads records "channelID|name" per started thread.
	Threads []string
	// Responses records all InteractionRespond calls.
	Responses []*discordgo.InteractionResponse

	// Err is returned by every call when non-nil.
	Err error
}

// NewSession creates an empty recording session.
func NewSession() *Session {
	return &Session{Messages: make(map[string][][]*discordgo.MessageEmbed)}
}

// ChannelMessageSendEmbeds records the batch.
func (m *Session) ChannelMessageSendEmbeds(channelID string, embeds []*discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.Messages[channelID] = append(m.Messages[channelID], embeds)
	return &discordgo.Message{ID: "mock-message", ChannelID: channelID, Embeds: embeds}, nil
}

// ThreadStart records the thread and returns a channel named after it.
func (m *Session) ThreadStart(channelID, name string, _ discordgo.ChannelType, _ int, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.Threads = append(m.Threads, channelID+"|"+name)
	return &discordgo.Channel{ID: "mock-thread", ParentID: channelID, Name: name}, nil
}

// InteractionRespond records the response.
func (m *Session) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses = append(m.Responses, resp)
	return m.Err
}

// LastResponse returns the most recent response, or nil.
func (m *Session) LastResponse() *discordgo.InteractionResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Responses) == 0 {
		return nil
	}
	return m.Responses[len(m.Responses)-1]
}
