package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/pkg/api/discord"
	"github.com/questmaster/backend/pkg/xcontext"
)

const (
	embedColorBlue   = 3447003
	embedColorGreen  = 3066993
	embedColorYellow = 16776960
	embedColorRed    = 15158332
)

const humanTimeFormat = "02/01/2006 15:04"

// Announcement colors per game type.
var gameTypeColors = map[entity.GameType]int{
	entity.Oneshot:  embedColorGreen,
	entity.Campaign: embedColorBlue,
}

func gameURL(siteBaseURL, slug string) string {
	return fmt.Sprintf("%s/annonces/%s", siteBaseURL, slug)
}

func restrictionMessage(game *entity.Game) string {
	icons := map[entity.RestrictionType]string{
		entity.AllAudiences: ":green_circle: Tout public",
		entity.Sixteen:      ":yellow_circle: 16+",
		entity.Eighteen:     ":red_circle: 18+",
	}

	msg, ok := icons[game.Restriction]
	if !ok {
		msg = ":red_circle: 18+"
	}

	if game.RestrictionTags != "" {
		msg += " " + game.RestrictionTags
	}

	return msg
}

func announcementTitle(game *entity.Game) string {
	title := game.Name
	if game.Status == entity.GameClosed {
		title += " (complet)"
	}

	if game.SpecialEventID.Valid && game.SpecialEvent.Emoji != "" {
		title = fmt.Sprintf("%s %s %s", game.SpecialEvent.Emoji, title, game.SpecialEvent.Emoji)
	}

	return title
}

func sessionTypeName(game *entity.Game) string {
	if game.SpecialEventID.Valid {
		return "Événement spécial : " + game.SpecialEvent.Name
	}

	if game.Type == entity.Campaign {
		return "Campagne"
	}

	return "OS"
}

func announcementColor(game *entity.Game) int {
	if game.SpecialEventID.Valid && game.SpecialEvent.Color != 0 {
		return game.SpecialEvent.Color
	}

	if color, ok := gameTypeColors[game.Type]; ok {
		return color
	}

	return embedColorBlue
}

// buildAnnouncementEmbed renders the public announcement posted in the posts
// channel. Field values are struck through once the game is closed.
func buildAnnouncementEmbed(game *entity.Game, nextSession *entity.GameSession, siteBaseURL string) *discord.Embed {
	fields := []discord.EmbedField{
		{Name: "MJ", Value: game.GM.Username, Inline: true},
		{Name: "Système", Value: game.System.Name, Inline: true},
		{Name: "Type de session", Value: sessionTypeName(game), Inline: true},
	}

	if nextSession != nil {
		fields = append(fields, discord.EmbedField{
			Name:   "Date",
			Value:  nextSession.Start.Format(humanTimeFormat),
			Inline: true,
		})
	} else if game.Date.Valid {
		fields = append(fields, discord.EmbedField{
			Name:   "Date",
			Value:  game.Date.Time.Format(humanTimeFormat),
			Inline: true,
		})
	}

	fields = append(fields,
		discord.EmbedField{Name: "Durée", Value: game.Length, Inline: true},
		discord.EmbedField{Name: "Avertissement", Value: restrictionMessage(game)},
		discord.EmbedField{Name: "Pour s'inscrire :", Value: gameURL(siteBaseURL, game.Slug) + "/"},
	)

	if game.Status == entity.GameClosed {
		for i := range fields {
			fields[i].Value = "~~" + fields[i].Value + "~~"
		}
	}

	return &discord.Embed{
		Title:  announcementTitle(game),
		Color:  announcementColor(game),
		Fields: fields,
	}
}

// buildChannelWelcomeEmbed renders the first message of a freshly created
// game channel, with the GM reminders.
func buildChannelWelcomeEmbed(game *entity.Game, siteBaseURL string) *discord.Embed {
	lines := []string{
		fmt.Sprintf(
			"<@%s> voici le salon pour ta partie %s et voici le lien [vers l'annonce](%s).",
			game.GMID, game.Name, gameURL(siteBaseURL, game.Slug),
		),
		fmt.Sprintf("Le rôle associé est <@&%s>.", game.RoleID),
		"",
		"Quelques petits rappels :",
		"- La partie doit être **organisée et jouée sur le serveur du Club JDR** (Cf. règlement).",
		"- Notifie tes joueur·euses **uniquement avec le rôle @PJ** mentionné plus haut, et non pas `@everyone`, `@here` ou `@Joueur·euses`.",
		"- Toutes les sessions **jouées** doivent être ajoutées dans QuestMaster au fur et à mesure.",
		"- Le bouton **Signaler** sur QuestMaster te permet de contacter les admins en cas de problème concernant la partie.",
	}

	return &discord.Embed{
		Title:       "Tout est prêt.",
		Color:       embedColorBlue,
		Description: strings.Join(lines, "\n"),
	}
}

func buildAddSessionEmbed(game *entity.Game, start, end time.Time, siteBaseURL string) *discord.Embed {
	return &discord.Embed{
		Title: "Nouvelle session prévue",
		Color: embedColorGreen,
		Description: fmt.Sprintf(
			"<@&%s>\nVotre MJ a ajouté une nouvelle session : du **%s** au **%s**\n\n"+
				"Pour ne pas l'oublier, pensez à l'ajouter à votre calendrier depuis "+
				"[l'annonce sur QuestMaster](%s).\n"+
				"Si vous avez un empêchement, prévenez votre MJ en avance.",
			game.RoleID,
			start.Format(humanTimeFormat),
			end.Format(humanTimeFormat),
			gameURL(siteBaseURL, game.Slug),
		),
	}
}

func buildEditSessionEmbed(game *entity.Game, oldStart, start time.Time) *discord.Embed {
	return &discord.Embed{
		Title: "Session modifiée",
		Color: embedColorYellow,
		Description: fmt.Sprintf(
			"<@&%s>\nVotre MJ a modifié la session ~~du %s~~\n"+
				"La session a été décalée au **%s**\n"+
				"Pensez à mettre à jour votre calendrier.",
			game.RoleID,
			oldStart.Format(humanTimeFormat),
			start.Format(humanTimeFormat),
		),
	}
}

func buildDeleteSessionEmbed(game *entity.Game, start, end time.Time) *discord.Embed {
	return &discord.Embed{
		Title: "Session annulée",
		Color: embedColorRed,
		Description: fmt.Sprintf(
			"<@&%s>\nVotre MJ a annulé la session du **%s** au **%s**\n"+
				"Pensez à l'enlever de votre calendrier.",
			game.RoleID,
			start.Format(humanTimeFormat),
			end.Format(humanTimeFormat),
		),
	}
}

func buildRegisterEmbed(playerID string) *discord.Embed {
	return &discord.Embed{
		Title:       "Nouvelle inscription",
		Color:       embedColorBlue,
		Description: fmt.Sprintf("<@%s> s'est inscrit. Bienvenue :wave:", playerID),
	}
}

func buildAlertEmbed(game *entity.Game, playerID, message, siteBaseURL string) *discord.Embed {
	return &discord.Embed{
		Title: "Signalement",
		Color: embedColorRed,
		Description: fmt.Sprintf(
			"**Signalement de <@%s> :**\n%s\n**Salon :**\n<#%s>\n**Annonce :**\n%s\n",
			playerID, message, game.ChannelID, gameURL(siteBaseURL, game.Slug),
		),
	}
}

// refreshAnnouncement edits the announcement message to reflect the current
// game state. Failures are logged and swallowed, the board stays the source
// of truth.
func refreshAnnouncement(
	ctx context.Context, endpoint discord.IEndpoint, game *entity.Game, nextSession *entity.GameSession,
) {
	if game.MsgID == "" {
		return
	}

	cfg := xcontext.Configs(ctx)
	embed := buildAnnouncementEmbed(game, nextSession, cfg.SiteBaseURL)
	err := endpoint.EditMessage(ctx, cfg.Discord.PostsChannelID, game.MsgID, "", embed)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update announcement of game %s: %v", game.ID, err)
	}
}
