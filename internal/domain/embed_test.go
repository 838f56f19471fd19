package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/questmaster/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func Test_buildAnnouncementEmbed(t *testing.T) {
	game := &entity.Game{
		Base:        entity.Base{ID: "game1"},
		Name:        "La tombe des rois",
		Slug:        "la-tombe-des-rois-par-bob",
		Type:        entity.Oneshot,
		Status:      entity.GameOpen,
		GM:          entity.User{Username: "bob"},
		System:      entity.System{Name: "Donjons et Dragons"},
		Length:      "4h",
		Restriction: entity.AllAudiences,
	}

	session := &entity.GameSession{
		Start: time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	}

	embed := buildAnnouncementEmbed(game, session, "http://localhost:8080")
	require.Equal(t, "La tombe des rois", embed.Title)
	require.Equal(t, embedColorGreen, embed.Color)

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}

	require.Equal(t, "bob", fields["MJ"])
	require.Equal(t, "Donjons et Dragons", fields["Système"])
	require.Equal(t, "OS", fields["Type de session"])
	require.Equal(t, "02/03/2024 20:00", fields["Date"])
	require.Equal(t, "4h", fields["Durée"])
	require.Equal(t, ":green_circle: Tout public", fields["Avertissement"])
	require.Equal(t, "http://localhost:8080/annonces/la-tombe-des-rois-par-bob/", fields["Pour s'inscrire :"])
}

func Test_buildAnnouncementEmbed_scheduledDate(t *testing.T) {
	game := &entity.Game{
		Name:        "La tombe des rois",
		Type:        entity.Oneshot,
		Status:      entity.GameOpen,
		GM:          entity.User{Username: "bob"},
		System:      entity.System{Name: "Donjons et Dragons"},
		Restriction: entity.AllAudiences,
		Date: sql.NullTime{
			Valid: true,
			Time:  time.Date(2024, 4, 5, 21, 0, 0, 0, time.UTC),
		},
	}

	// Without any planned session the scheduled date fills the Date field.
	embed := buildAnnouncementEmbed(game, nil, "http://localhost:8080")

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	require.Equal(t, "05/04/2024 21:00", fields["Date"])

	// A planned session takes over.
	session := &entity.GameSession{
		Start: time.Date(2024, 4, 12, 20, 0, 0, 0, time.UTC),
	}
	embed = buildAnnouncementEmbed(game, session, "http://localhost:8080")

	fields = map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	require.Equal(t, "12/04/2024 20:00", fields["Date"])
}

func Test_buildAnnouncementEmbed_closed(t *testing.T) {
	game := &entity.Game{
		Name:        "La tombe des rois",
		Type:        entity.Campaign,
		Status:      entity.GameClosed,
		GM:          entity.User{Username: "bob"},
		System:      entity.System{Name: "Donjons et Dragons"},
		Restriction: entity.Eighteen,
	}

	embed := buildAnnouncementEmbed(game, nil, "http://localhost:8080")
	require.Equal(t, "La tombe des rois (complet)", embed.Title)
	require.Equal(t, embedColorBlue, embed.Color)

	// Every field value is struck through.
	for _, f := range embed.Fields {
		require.Contains(t, f.Value, "~~")
	}
}

func Test_buildAnnouncementEmbed_specialEvent(t *testing.T) {
	game := &entity.Game{
		Name:           "Manoir hanté",
		Type:           entity.Oneshot,
		Status:         entity.GameOpen,
		GM:             entity.User{Username: "bob"},
		System:         entity.System{Name: "CoC"},
		Restriction:    entity.Sixteen,
		SpecialEventID: toNullString("halloween"),
		SpecialEvent: entity.SpecialEvent{
			Name:  "Halloween",
			Emoji: ":jack_o_lantern:",
			Color: 15158332,
		},
	}

	embed := buildAnnouncementEmbed(game, nil, "http://localhost:8080")
	require.Equal(t, ":jack_o_lantern: Manoir hanté :jack_o_lantern:", embed.Title)
	require.Equal(t, 15158332, embed.Color)

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	require.Equal(t, "Événement spécial : Halloween", fields["Type de session"])
	require.Equal(t, ":yellow_circle: 16+", fields["Avertissement"])
}

func Test_restrictionMessage_tags(t *testing.T) {
	game := &entity.Game{
		Restriction:     entity.Eighteen,
		RestrictionTags: "gore, violence",
	}

	require.Equal(t, ":red_circle: 18+ gore, violence", restrictionMessage(game))
}
