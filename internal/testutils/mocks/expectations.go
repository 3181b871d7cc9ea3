// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
	userconfigmock "github.com/KirkDiggler/pokeduel/internal/repositories/userconfig/mock"
)

// ExpectMemberGet sets up a mock expectation for reading a member's party
func ExpectMemberGet(
	ctx context.Context, mockRepo *userconfigmock.MockRepository,
	memberID string, party []userconfig.PartyMember, err error,
) *gomock.Call {
	var output *userconfig.GetMemberOutput
	if err == nil {
		output = &userconfig.GetMemberOutput{
			Member: &userconfig.MemberConfig{MemberID: memberID, Party: party},
		}
	}

	return mockRepo.EXPECT().
		GetMember(ctx, &userconfig.GetMemberInput{MemberID: memberID}).
		Return(output, err)
}

// ExpectGuildGet sets up a mock expectation for reading a guild's settings
func ExpectGuildGet(
	ctx context.Context, mockRepo *userconfigmock.MockRepository,
	guildID string, useThreads bool, err error,
) *gomock.Call {
	var output *userconfig.GetGuildOutput
	if err == nil {
		output = &userconfig.GetGuildOutput{
			Guild: &userconfig.GuildConfig{GuildID: guildID, UseThreads: useThreads},
		}
	}

	return mockRepo.EXPECT().
		GetGuild(ctx, &userconfig.GetGuildInput{GuildID: guildID}).
		Return(output, err)
}
