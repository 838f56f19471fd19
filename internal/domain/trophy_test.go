package domain

import (
	"testing"

	"github.com/questmaster/backend/internal/domain/trophy"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestTrophyDomain() TrophyDomain {
	trophyRepo := repository.NewTrophyRepository()
	return NewTrophyDomain(
		trophyRepo,
		repository.NewUserRepository(),
		trophy.NewManager(trophyRepo),
	)
}

func Test_trophyDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.InsertFixtures(ctx)

	trophyDomain := newTestTrophyDomain()

	resp, err := trophyDomain.Create(ctx, &model.CreateTrophyRequest{
		Name:   "Première partie",
		Unique: true,
	})
	require.NoError(t, err)
	require.Equal(t, "premiere-partie", resp.Trophy.ID)

	_, err = trophyDomain.Create(ctx, &model.CreateTrophyRequest{Name: "Première partie"})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)
}

func Test_trophyDomain_Award(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.InsertFixtures(ctx)

	trophyDomain := newTestTrophyDomain()

	_, err := trophyDomain.Award(ctx, &model.AwardTrophyRequest{
		UserID:   testutil.Player1.ID,
		TrophyID: "badge-os",
		Amount:   2,
	})
	require.NoError(t, err)

	resp, err := trophyDomain.GetUserTrophies(ctx, &model.GetUserTrophiesRequest{UserID: testutil.Player1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Trophies, 1)
	require.Equal(t, "badge-os", resp.Trophies[0].Trophy.ID)
	require.Equal(t, 2, resp.Trophies[0].Quantity)
}

func Test_trophyDomain_Award_notFound(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.InsertFixtures(ctx)

	trophyDomain := newTestTrophyDomain()

	_, err := trophyDomain.Award(ctx, &model.AwardTrophyRequest{
		UserID:   "999999999999999999",
		TrophyID: "badge-os",
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)

	_, err = trophyDomain.Award(ctx, &model.AwardTrophyRequest{
		UserID:   testutil.Player1.ID,
		TrophyID: "no-such-trophy",
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_trophyDomain_GetUserTrophies_defaultsToRequester(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	trophyDomain := newTestTrophyDomain()

	_, err := trophyDomain.Award(ctx, &model.AwardTrophyRequest{
		UserID:   testutil.Player1.ID,
		TrophyID: "badge-campaign",
	})
	require.NoError(t, err)

	resp, err := trophyDomain.GetUserTrophies(ctx, &model.GetUserTrophiesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Trophies, 1)
	require.Equal(t, "badge-campaign", resp.Trophies[0].Trophy.ID)
}

func Test_trophyDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.InsertFixtures(ctx)

	trophyDomain := newTestTrophyDomain()

	_, err := trophyDomain.Award(ctx, &model.AwardTrophyRequest{
		UserID:   testutil.Player1.ID,
		TrophyID: "badge-os",
		Amount:   3,
	})
	require.NoError(t, err)

	_, err = trophyDomain.Award(ctx, &model.AwardTrophyRequest{
		UserID:   testutil.Player2.ID,
		TrophyID: "badge-os",
	})
	require.NoError(t, err)

	_, err = trophyDomain.Award(ctx, &model.AwardTrophyRequest{
		UserID:   testutil.Player2.ID,
		TrophyID: "badge-campaign",
		Amount:   5,
	})
	require.NoError(t, err)

	resp, err := trophyDomain.GetLeaderboard(ctx, &model.GetTrophyLeaderboardRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, testutil.Player2.ID, resp.Entries[0].User.ID)
	require.Equal(t, 6, resp.Entries[0].Total)
	require.Equal(t, testutil.Player1.ID, resp.Entries[1].User.ID)
	require.Equal(t, 3, resp.Entries[1].Total)

	resp, err = trophyDomain.GetLeaderboard(ctx, &model.GetTrophyLeaderboardRequest{TrophyID: "badge-os"})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, testutil.Player1.ID, resp.Entries[0].User.ID)
	require.Equal(t, 3, resp.Entries[0].Total)

	_, err = trophyDomain.GetLeaderboard(ctx, &model.GetTrophyLeaderboardRequest{TrophyID: "no-such-trophy"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}
