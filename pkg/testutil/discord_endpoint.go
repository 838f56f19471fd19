package testutil

import (
	"context"
	"errors"

	"github.com/questmaster/backend/pkg/api/discord"
)

// MockDiscordEndpoint returns successful zero values by default so domain
// flows run without a guild. Set the func fields to observe or fail calls.
type MockDiscordEndpoint struct {
	GetMemberFunc     func(ctx context.Context, userID string) (discord.Member, error)
	GiveRoleFunc      func(ctx context.Context, userID, roleID string) error
	TakeRoleFunc      func(ctx context.Context, userID, roleID string) error
	CreateRoleFunc    func(ctx context.Context, name, permissions string) (discord.Role, error)
	DeleteRoleFunc    func(ctx context.Context, roleID string) error
	CreateChannelFunc func(ctx context.Context, name, parentID string, overwrites []discord.PermissionOverwrite) (discord.Channel, error)
	GetChannelFunc    func(ctx context.Context, channelID string) (discord.Channel, error)
	DeleteChannelFunc func(ctx context.Context, channelID string) error
	SendMessageFunc   func(ctx context.Context, channelID, content string, embed *discord.Embed) (discord.Message, error)
	EditMessageFunc   func(ctx context.Context, channelID, messageID, content string, embed *discord.Embed) error
	DeleteMessageFunc func(ctx context.Context, channelID, messageID string) error
}

func (e *MockDiscordEndpoint) GetMember(ctx context.Context, userID string) (discord.Member, error) {
	if e.GetMemberFunc != nil {
		return e.GetMemberFunc(ctx, userID)
	}

	return discord.Member{}, errors.New("not implemented")
}

func (e *MockDiscordEndpoint) GiveRole(ctx context.Context, userID, roleID string) error {
	if e.GiveRoleFunc != nil {
		return e.GiveRoleFunc(ctx, userID, roleID)
	}

	return nil
}

func (e *MockDiscordEndpoint) TakeRole(ctx context.Context, userID, roleID string) error {
	if e.TakeRoleFunc != nil {
		return e.TakeRoleFunc(ctx, userID, roleID)
	}

	return nil
}

func (e *MockDiscordEndpoint) CreateRole(ctx context.Context, name, permissions string) (discord.Role, error) {
	if e.CreateRoleFunc != nil {
		return e.CreateRoleFunc(ctx, name, permissions)
	}

	return discord.Role{ID: "role-" + name, Name: name, Permissions: permissions}, nil
}

func (e *MockDiscordEndpoint) DeleteRole(ctx context.Context, roleID string) error {
	if e.DeleteRoleFunc != nil {
		return e.DeleteRoleFunc(ctx, roleID)
	}

	return nil
}

func (e *MockDiscordEndpoint) CreateChannel(
	ctx context.Context, name, parentID string, overwrites []discord.PermissionOverwrite,
) (discord.Channel, error) {
	if e.CreateChannelFunc != nil {
		return e.CreateChannelFunc(ctx, name, parentID, overwrites)
	}

	return discord.Channel{ID: "channel-" + name, Name: name, ParentID: parentID}, nil
}

func (e *MockDiscordEndpoint) GetChannel(ctx context.Context, channelID string) (discord.Channel, error) {
	if e.GetChannelFunc != nil {
		return e.GetChannelFunc(ctx, channelID)
	}

	return discord.Channel{ID: channelID}, nil
}

func (e *MockDiscordEndpoint) DeleteChannel(ctx context.Context, channelID string) error {
	if e.DeleteChannelFunc != nil {
		return e.DeleteChannelFunc(ctx, channelID)
	}

	return nil
}

func (e *MockDiscordEndpoint) SendMessage(
	ctx context.Context, channelID, content string, embed *discord.Embed,
) (discord.Message, error) {
	if e.SendMessageFunc != nil {
		return e.SendMessageFunc(ctx, channelID, content, embed)
	}

	return discord.Message{ID: "message", ChannelID: channelID}, nil
}

func (e *MockDiscordEndpoint) EditMessage(
	ctx context.Context, channelID, messageID, content string, embed *discord.Embed,
) error {
	if e.EditMessageFunc != nil {
		return e.EditMessageFunc(ctx, channelID, messageID, content, embed)
	}

	return nil
}

func (e *MockDiscordEndpoint) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if e.DeleteMessageFunc != nil {
		return e.DeleteMessageFunc(ctx, channelID, messageID)
	}

	return nil
}
