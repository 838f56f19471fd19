package domain

import (
	"testing"

	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_specialEventDomain_CreateAndList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.InsertFixtures(ctx)

	eventDomain := NewSpecialEventDomain(repository.NewSpecialEventRepository())

	resp, err := eventDomain.Create(ctx, &model.CreateSpecialEventRequest{
		Name:  "Noël",
		Emoji: ":christmas_tree:",
		Color: 3066993,
	})
	require.NoError(t, err)
	require.True(t, resp.SpecialEvent.Active)

	list, err := eventDomain.GetList(ctx, &model.GetSpecialEventsRequest{})
	require.NoError(t, err)
	require.Len(t, list.SpecialEvents, 2)
}

func Test_specialEventDomain_Update_activeFlag(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.InsertFixtures(ctx)

	eventDomain := NewSpecialEventDomain(repository.NewSpecialEventRepository())

	_, err := eventDomain.Update(ctx, &model.UpdateSpecialEventRequest{
		ID:     testutil.SpecialEvent1.ID,
		Emoji:  testutil.SpecialEvent1.Emoji,
		Color:  testutil.SpecialEvent1.Color,
		Active: false,
	})
	require.NoError(t, err)

	list, err := eventDomain.GetList(ctx, &model.GetSpecialEventsRequest{ActiveOnly: true})
	require.NoError(t, err)
	require.Empty(t, list.SpecialEvents)
}

func Test_specialEventDomain_Delete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.InsertFixtures(ctx)

	eventDomain := NewSpecialEventDomain(repository.NewSpecialEventRepository())

	_, err := eventDomain.Delete(ctx, &model.DeleteSpecialEventRequest{ID: testutil.SpecialEvent1.ID})
	require.NoError(t, err)

	list, err := eventDomain.GetList(ctx, &model.GetSpecialEventsRequest{})
	require.NoError(t, err)
	require.Empty(t, list.SpecialEvents)
}
