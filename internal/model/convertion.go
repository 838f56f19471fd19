package model

import (
	"time"

	"github.com/questmaster/backend/internal/entity"
)

func ConvertUser(user *entity.User, avatar string) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:       user.ID,
		Username: user.Username,
		SlugName: user.SlugName,
		Role:     user.Role,
		Avatar:   avatar,
		IsGM:     user.Role == entity.GMRole || user.Role == entity.AdminRole,
		Mention:  "<@" + user.ID + ">",
		IsPlayer: !user.NotPlayerAsOf.Valid,
	}
}

func ConvertGame(
	game *entity.Game,
	players []entity.User,
	sessions []entity.GameSession,
) Game {
	if game == nil {
		return Game{}
	}

	convertedPlayers := []User{}
	for i := range players {
		convertedPlayers = append(convertedPlayers, ConvertUser(&players[i], ""))
	}

	convertedSessions := []GameSession{}
	for i := range sessions {
		convertedSessions = append(convertedSessions, ConvertGameSession(&sessions[i]))
	}

	var date *time.Time
	if game.Date.Valid {
		date = &game.Date.Time
	}

	return Game{
		ID:              game.ID,
		Name:            game.Name,
		Slug:            game.Slug,
		Type:            string(game.Type),
		Status:          string(game.Status),
		GM:              ConvertUser(&game.GM, ""),
		System:          game.System.Name,
		Vtt:             game.Vtt.Name,
		SpecialEvent:    game.SpecialEvent.Name,
		Description:     game.Description,
		Length:          game.Length,
		SessionLength:   game.SessionLength,
		Frequency:       game.Frequency,
		Characters:      game.Characters,
		Classification:  game.Classification,
		Ambience:        game.Ambience,
		Complement:      game.Complement,
		Restriction:     string(game.Restriction),
		RestrictionTags: game.RestrictionTags,
		PartySize:       game.PartySize,
		PartySelection:  game.PartySelection,
		Pregen:          game.Pregen,
		ImageURL:        game.ImageURL,
		Date:            date,
		ChannelID:       game.ChannelID,
		RoleID:          game.RoleID,
		MsgID:           game.MsgID,
		Players:         convertedPlayers,
		Sessions:        convertedSessions,
		CreatedAt:       game.CreatedAt,
	}
}

func ConvertGameSession(session *entity.GameSession) GameSession {
	if session == nil {
		return GameSession{}
	}

	return GameSession{
		ID:     session.ID,
		GameID: session.GameID,
		Start:  session.Start,
		End:    session.End,
	}
}

func ConvertGameEvent(event *entity.GameEvent) GameEvent {
	if event == nil {
		return GameEvent{}
	}

	return GameEvent{
		ID:          event.ID,
		Action:      string(event.Action),
		GameID:      event.GameID,
		UserID:      event.UserID.String,
		Description: event.Description,
		Timestamp:   event.CreatedAt,
	}
}

func ConvertTrophy(trophy *entity.Trophy) Trophy {
	if trophy == nil {
		return Trophy{}
	}

	return Trophy{
		ID:     trophy.ID,
		Name:   trophy.Name,
		Unique: trophy.Unique,
		Icon:   trophy.Icon,
	}
}

func ConvertUserTrophy(userTrophy *entity.UserTrophy) UserTrophy {
	if userTrophy == nil {
		return UserTrophy{}
	}

	return UserTrophy{
		Trophy:   ConvertTrophy(&userTrophy.Trophy),
		Quantity: userTrophy.Quantity,
	}
}

func ConvertSystem(system *entity.System) System {
	if system == nil {
		return System{}
	}

	return System{ID: system.ID, Name: system.Name, Icon: system.Icon}
}

func ConvertVtt(vtt *entity.Vtt) Vtt {
	if vtt == nil {
		return Vtt{}
	}

	return Vtt{ID: vtt.ID, Name: vtt.Name, Icon: vtt.Icon}
}

func ConvertSpecialEvent(event *entity.SpecialEvent) SpecialEvent {
	if event == nil {
		return SpecialEvent{}
	}

	return SpecialEvent{
		ID:     event.ID,
		Name:   event.Name,
		Emoji:  event.Emoji,
		Color:  event.Color,
		Active: event.Active,
	}
}

func ConvertCategory(category *entity.Category) Category {
	if category == nil {
		return Category{}
	}

	return Category{
		ID:   category.ID,
		Type: string(category.Type),
		Size: category.Size,
	}
}
