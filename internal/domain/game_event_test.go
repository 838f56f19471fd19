package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_gameEventDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixtures(ctx)

	eventRepo := repository.NewGameEventRepository()
	for _, action := range []entity.EventActionType{entity.EventCreate, entity.EventRegister, entity.EventRegister} {
		require.NoError(t, eventRepo.Create(ctx, &entity.GameEvent{
			Base:   entity.Base{ID: uuid.NewString()},
			Action: action,
			GameID: testutil.Game1.ID,
		}))
	}

	eventDomain := NewGameEventDomain(eventRepo)

	resp, err := eventDomain.GetList(ctx, &model.GetGameEventsRequest{GameID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Events, 3)

	resp, err = eventDomain.GetList(ctx, &model.GetGameEventsRequest{
		GameID: testutil.Game1.ID,
		Action: "register",
	})
	require.NoError(t, err)
	require.Len(t, resp.Events, 2)

	_, err = eventDomain.GetList(ctx, &model.GetGameEventsRequest{Action: "not-an-action"})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}
