package discord

import "context"

type IEndpoint interface {
	GetMember(ctx context.Context, userID string) (Member, error)
	GiveRole(ctx context.Context, userID, roleID string) error
	TakeRole(ctx context.Context, userID, roleID string) error
	CreateRole(ctx context.Context, name, permissions string) (Role, error)
	DeleteRole(ctx context.Context, roleID string) error
	CreateChannel(ctx context.Context, name, parentID string, overwrites []PermissionOverwrite) (Channel, error)
	GetChannel(ctx context.Context, channelID string) (Channel, error)
	DeleteChannel(ctx context.Context, channelID string) error
	SendMessage(ctx context.Context, channelID, content string, embed *Embed) (Message, error)
	EditMessage(ctx context.Context, channelID, messageID, content string, embed *Embed) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}
