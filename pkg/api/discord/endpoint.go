package discord

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/questmaster/backend/config"
	"github.com/questmaster/backend/pkg/api"
)

const apiURL = "https://discordapp.com/api/v9"
const userAgent = "DiscordBot (https://github.com/questmaster/backend, 1.0)"

const (
	giveRoleResource    = "give_role"
	sendMessageResource = "send_message"
)

type Endpoint struct {
	BotToken string
	GuildID  string

	apiGenerator      api.Generator
	rateLimitResource *xsync.MapOf[string, *xsync.MapOf[string, time.Time]]
}

func New(cfg config.DiscordConfigs) *Endpoint {
	return &Endpoint{
		BotToken:          cfg.BotToken,
		GuildID:           cfg.GuildID,
		apiGenerator:      api.NewGenerator(),
		rateLimitResource: xsync.NewMapOf[*xsync.MapOf[string, time.Time]](),
	}
}

func (e *Endpoint) GetMember(ctx context.Context, userID string) (Member, error) {
	resp, err := e.apiGenerator.New(apiURL, "/guilds/%s/members/%s", e.GuildID, userID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Member{}, err
	}

	if err := checkResponse(resp); err != nil {
		return Member{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Member{}, errors.New("invalid response")
	}

	id, err := body.GetString("user.id")
	if err != nil {
		return Member{}, err
	}

	username, err := body.GetString("user.username")
	if err != nil {
		return Member{}, err
	}

	member := Member{ID: id, Username: username}
	if nick, err := body.GetString("nick"); err == nil {
		member.Nick = nick
	}

	if avatar, err := body.GetString("user.avatar"); err == nil {
		member.Avatar = avatar
	}

	if roles, err := body.GetArray("roles"); err == nil {
		for _, role := range roles {
			if s, ok := role.(string); ok {
				member.Roles = append(member.Roles, s)
			}
		}
	}

	return member, nil
}

func (e *Endpoint) GiveRole(ctx context.Context, userID, roleID string) error {
	if err := e.checkLimitingResource(giveRoleResource, e.GuildID); err != nil {
		return err
	}

	resp, err := e.apiGenerator.New(apiURL, "/guilds/%s/members/%s/roles/%s", e.GuildID, userID, roleID).
		Header("User-Agent", userAgent).
		PUT(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, giveRoleResource, e.GuildID); err != nil {
		return err
	}

	return checkResponse(resp)
}

func (e *Endpoint) TakeRole(ctx context.Context, userID, roleID string) error {
	if err := e.checkLimitingResource(giveRoleResource, e.GuildID); err != nil {
		return err
	}

	resp, err := e.apiGenerator.New(apiURL, "/guilds/%s/members/%s/roles/%s", e.GuildID, userID, roleID).
		Header("User-Agent", userAgent).
		DELETE(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, giveRoleResource, e.GuildID); err != nil {
		return err
	}

	return checkResponse(resp)
}

func (e *Endpoint) CreateRole(ctx context.Context, name, permissions string) (Role, error) {
	resp, err := e.apiGenerator.New(apiURL, "/guilds/%s/roles", e.GuildID).
		Header("User-Agent", userAgent).
		Body(api.JSON{
			"name":        name,
			"permissions": permissions,
			"mentionable": true,
		}).
		POST(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Role{}, err
	}

	if err := checkResponse(resp); err != nil {
		return Role{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Role{}, errors.New("invalid response")
	}

	id, err := body.GetString("id")
	if err != nil {
		return Role{}, err
	}

	return Role{ID: id, Name: name, Permissions: permissions}, nil
}

func (e *Endpoint) DeleteRole(ctx context.Context, roleID string) error {
	resp, err := e.apiGenerator.New(apiURL, "/guilds/%s/roles/%s", e.GuildID, roleID).
		Header("User-Agent", userAgent).
		DELETE(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	return checkResponse(resp)
}

func (e *Endpoint) CreateChannel(
	ctx context.Context, name, parentID string, overwrites []PermissionOverwrite,
) (Channel, error) {
	body := api.JSON{
		"name": name,
		"type": 0,
	}

	if parentID != "" {
		body["parent_id"] = parentID
	}

	if len(overwrites) > 0 {
		encoded := make([]any, 0, len(overwrites))
		for _, o := range overwrites {
			encoded = append(encoded, map[string]any{
				"id":    o.ID,
				"type":  o.Type,
				"allow": o.Allow,
				"deny":  o.Deny,
			})
		}
		body["permission_overwrites"] = encoded
	}

	resp, err := e.apiGenerator.New(apiURL, "/guilds/%s/channels", e.GuildID).
		Header("User-Agent", userAgent).
		Body(body).
		POST(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Channel{}, err
	}

	if err := checkResponse(resp); err != nil {
		return Channel{}, err
	}

	obj, ok := resp.Body.(api.JSON)
	if !ok {
		return Channel{}, errors.New("invalid response")
	}

	return parseChannel(obj)
}

func (e *Endpoint) GetChannel(ctx context.Context, channelID string) (Channel, error) {
	resp, err := e.apiGenerator.New(apiURL, "/channels/%s", channelID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Channel{}, err
	}

	if err := checkResponse(resp); err != nil {
		return Channel{}, err
	}

	obj, ok := resp.Body.(api.JSON)
	if !ok {
		return Channel{}, errors.New("invalid response")
	}

	return parseChannel(obj)
}

func (e *Endpoint) DeleteChannel(ctx context.Context, channelID string) error {
	resp, err := e.apiGenerator.New(apiURL, "/channels/%s", channelID).
		Header("User-Agent", userAgent).
		DELETE(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	return checkResponse(resp)
}

func (e *Endpoint) SendMessage(
	ctx context.Context, channelID, content string, embed *Embed,
) (Message, error) {
	if err := e.checkLimitingResource(sendMessageResource, channelID); err != nil {
		return Message{}, err
	}

	resp, err := e.apiGenerator.New(apiURL, "/channels/%s/messages", channelID).
		Header("User-Agent", userAgent).
		Body(messageBody(content, embed)).
		POST(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Message{}, err
	}

	if err := e.checkTooManyRequest(resp, sendMessageResource, channelID); err != nil {
		return Message{}, err
	}

	if err := checkResponse(resp); err != nil {
		return Message{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Message{}, errors.New("invalid response")
	}

	id, err := body.GetString("id")
	if err != nil {
		return Message{}, err
	}

	return Message{ID: id, ChannelID: channelID}, nil
}

func (e *Endpoint) EditMessage(
	ctx context.Context, channelID, messageID, content string, embed *Embed,
) error {
	if err := e.checkLimitingResource(sendMessageResource, channelID); err != nil {
		return err
	}

	resp, err := e.apiGenerator.New(apiURL, "/channels/%s/messages/%s", channelID, messageID).
		Header("User-Agent", userAgent).
		Body(messageBody(content, embed)).
		PATCH(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, sendMessageResource, channelID); err != nil {
		return err
	}

	return checkResponse(resp)
}

func (e *Endpoint) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	resp, err := e.apiGenerator.New(apiURL, "/channels/%s/messages/%s", channelID, messageID).
		Header("User-Agent", userAgent).
		DELETE(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	return checkResponse(resp)
}

func messageBody(content string, embed *Embed) api.JSON {
	body := api.JSON{"content": content}
	if embed != nil {
		body["embeds"] = []any{map[string]any{
			"title":       embed.Title,
			"description": embed.Description,
			"url":         embed.URL,
			"color":       embed.Color,
			"fields":      embedFields(embed.Fields),
		}}
	}

	return body
}

func embedFields(fields []EmbedField) []any {
	encoded := make([]any, 0, len(fields))
	for _, f := range fields {
		encoded = append(encoded, map[string]any{
			"name":   f.Name,
			"value":  f.Value,
			"inline": f.Inline,
		})
	}

	return encoded
}

func parseChannel(obj api.JSON) (Channel, error) {
	id, err := obj.GetString("id")
	if err != nil {
		return Channel{}, err
	}

	name, err := obj.GetString("name")
	if err != nil {
		return Channel{}, err
	}

	channel := Channel{ID: id, Name: name}
	if t, err := obj.GetInt("type"); err == nil {
		channel.Type = t
	}

	if parentID, err := obj.GetString("parent_id"); err == nil {
		channel.ParentID = parentID
	}

	if position, err := obj.GetInt("position"); err == nil {
		channel.Position = position
	}

	return channel, nil
}

func checkResponse(resp *api.Response) error {
	if resp.Code < http.StatusBadRequest {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.Code}
	if body, ok := resp.Body.(api.JSON); ok {
		if msg, err := body.GetString("message"); err == nil {
			apiErr.Message = msg
		}
	}

	return apiErr
}

func (e *Endpoint) checkLimitingResource(resource, identifier string) error {
	if limit, ok := e.rateLimitResource.Load(resource); ok {
		if resetAt, ok := limit.Load(identifier); ok {
			if resetAt.After(time.Now()) {
				return wrapRateLimit(resetAt.Unix())
			}

			// If the rate limit is reset, delete the limit for this resource.
			limit.Delete(identifier)
		}
	}

	return nil
}

func (e *Endpoint) checkTooManyRequest(resp *api.Response, resource, identifier string) error {
	if resp.Code == http.StatusTooManyRequests {
		resetAt, err := strconv.Atoi(resp.Header.Get("X-Ratelimit-Reset"))
		if err != nil {
			return err
		}

		resourceLimiter, _ := e.rateLimitResource.LoadOrStore(resource, xsync.NewMapOf[time.Time]())
		resourceLimiter.Store(identifier, time.Unix(int64(resetAt), 0))
		return wrapRateLimit(int64(resetAt))
	}

	return nil
}
