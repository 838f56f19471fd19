package domain

import (
	"testing"
	"time"

	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestSessionDomain() GameSessionDomain {
	return NewGameSessionDomain(
		repository.NewGameRepository(),
		repository.NewUserRepository(),
		repository.NewGameSessionRepository(),
		repository.NewGameEventRepository(),
		&testutil.MockDiscordEndpoint{},
	)
}

func Test_gameSessionDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	sessionDomain := newTestSessionDomain()

	start := time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC)
	resp, err := sessionDomain.Create(ctx, &model.CreateGameSessionRequest{
		GameID: testutil.Game1.ID,
		Start:  start,
		End:    start.Add(4 * time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Session.ID)

	// The end must come after the start.
	_, err = sessionDomain.Create(ctx, &model.CreateGameSessionRequest{
		GameID: testutil.Game1.ID,
		Start:  start,
		End:    start,
	})
	require.Error(t, err)
	require.Equal(t, "The session must end after it starts", err.Error())
}

func Test_gameSessionDomain_Create_overlap(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	sessionDomain := newTestSessionDomain()

	start := time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC)
	_, err := sessionDomain.Create(ctx, &model.CreateGameSessionRequest{
		GameID: testutil.Game1.ID,
		Start:  start,
		End:    start.Add(4 * time.Hour),
	})
	require.NoError(t, err)

	// Intersecting range is refused.
	_, err = sessionDomain.Create(ctx, &model.CreateGameSessionRequest{
		GameID: testutil.Game1.ID,
		Start:  start.Add(2 * time.Hour),
		End:    start.Add(6 * time.Hour),
	})
	require.Error(t, err)
	require.Equal(t, errorx.SessionConflict, err.(errorx.Error).Code)

	// A touching range is not an overlap.
	_, err = sessionDomain.Create(ctx, &model.CreateGameSessionRequest{
		GameID: testutil.Game1.ID,
		Start:  start.Add(4 * time.Hour),
		End:    start.Add(8 * time.Hour),
	})
	require.NoError(t, err)
}

func Test_gameSessionDomain_Update(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	sessionDomain := newTestSessionDomain()

	start := time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC)
	created, err := sessionDomain.Create(ctx, &model.CreateGameSessionRequest{
		GameID: testutil.Game1.ID,
		Start:  start,
		End:    start.Add(4 * time.Hour),
	})
	require.NoError(t, err)

	// Moving a session over its own range is allowed.
	resp, err := sessionDomain.Update(ctx, &model.UpdateGameSessionRequest{
		ID:    created.Session.ID,
		Start: start.Add(time.Hour),
		End:   start.Add(5 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, start.Add(time.Hour), resp.Session.Start)

	other, err := sessionDomain.Create(ctx, &model.CreateGameSessionRequest{
		GameID: testutil.Game1.ID,
		Start:  start.Add(24 * time.Hour),
		End:    start.Add(28 * time.Hour),
	})
	require.NoError(t, err)

	// Moving it over another session is not.
	_, err = sessionDomain.Update(ctx, &model.UpdateGameSessionRequest{
		ID:    other.Session.ID,
		Start: start.Add(2 * time.Hour),
		End:   start.Add(6 * time.Hour),
	})
	require.Error(t, err)
	require.Equal(t, errorx.SessionConflict, err.(errorx.Error).Code)
}

func Test_gameSessionDomain_Delete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	sessionDomain := newTestSessionDomain()

	start := time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC)
	created, err := sessionDomain.Create(ctx, &model.CreateGameSessionRequest{
		GameID: testutil.Game1.ID,
		Start:  start,
		End:    start.Add(4 * time.Hour),
	})
	require.NoError(t, err)

	_, err = sessionDomain.Delete(ctx, &model.DeleteGameSessionRequest{ID: created.Session.ID})
	require.NoError(t, err)

	list, err := sessionDomain.GetList(ctx, &model.GetGameSessionsRequest{GameID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Empty(t, list.Sessions)
}

func Test_gameSessionDomain_permission(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	sessionDomain := newTestSessionDomain()

	start := time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC)
	_, err := sessionDomain.Create(ctx, &model.CreateGameSessionRequest{
		GameID: testutil.Game1.ID,
		Start:  start,
		End:    start.Add(4 * time.Hour),
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}
