package trophy

import (
	"testing"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Manager_Award_unique(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixtures(ctx)

	trophyRepo := repository.NewTrophyRepository()
	require.NoError(t, trophyRepo.Create(ctx, &entity.Trophy{
		Base:   entity.Base{ID: "premiere-partie"},
		Name:   "Première partie",
		Unique: true,
	}))

	manager := NewManager(trophyRepo)

	require.NoError(t, manager.Award(ctx, testutil.Player1.ID, "premiere-partie", 1))

	// Awarding a unique trophy twice is a no-op.
	require.NoError(t, manager.Award(ctx, testutil.Player1.ID, "premiere-partie", 3))

	userTrophy, err := trophyRepo.GetUserTrophy(ctx, testutil.Player1.ID, "premiere-partie")
	require.NoError(t, err)
	require.Equal(t, 1, userTrophy.Quantity)
}

func Test_Manager_Award_quantity(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixtures(ctx)

	trophyRepo := repository.NewTrophyRepository()
	manager := NewManager(trophyRepo)

	require.NoError(t, manager.Award(ctx, testutil.Player1.ID, "badge-os", 3))
	require.NoError(t, manager.Award(ctx, testutil.Player1.ID, "badge-os", 5))

	userTrophy, err := trophyRepo.GetUserTrophy(ctx, testutil.Player1.ID, "badge-os")
	require.NoError(t, err)
	require.Equal(t, 8, userTrophy.Quantity)
}

func Test_Manager_Award_unknownTrophy(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixtures(ctx)

	manager := NewManager(repository.NewTrophyRepository())
	require.Error(t, manager.Award(ctx, testutil.Player1.ID, "no-such-trophy", 1))
}

func Test_Manager_Award_defaultAmount(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixtures(ctx)

	trophyRepo := repository.NewTrophyRepository()
	manager := NewManager(trophyRepo)

	// A non-positive amount counts as one.
	require.NoError(t, manager.Award(ctx, testutil.Player1.ID, "badge-os", 0))

	userTrophy, err := trophyRepo.GetUserTrophy(ctx, testutil.Player1.ID, "badge-os")
	require.NoError(t, err)
	require.Equal(t, 1, userTrophy.Quantity)
}
