package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/api/discord"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_categoryDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.InsertFixtures(ctx)

	categoryDomain := NewCategoryDomain(repository.NewCategoryRepository(), &testutil.MockDiscordEndpoint{})

	resp, err := categoryDomain.Create(ctx, &model.CreateCategoryRequest{
		ID:   "category-oneshot-2",
		Type: "oneshot",
	})
	require.NoError(t, err)
	require.Equal(t, "oneshot", resp.Category.Type)

	_, err = categoryDomain.Create(ctx, &model.CreateCategoryRequest{
		ID:   "category-oneshot-3",
		Type: "not-a-type",
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_categoryDomain_Create_unknownChannel(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.InsertFixtures(ctx)

	endpoint := &testutil.MockDiscordEndpoint{
		GetChannelFunc: func(ctx context.Context, channelID string) (discord.Channel, error) {
			return discord.Channel{}, errors.New("unknown channel")
		},
	}
	categoryDomain := NewCategoryDomain(repository.NewCategoryRepository(), endpoint)

	_, err := categoryDomain.Create(ctx, &model.CreateCategoryRequest{
		ID:   "no-such-channel",
		Type: "oneshot",
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_categoryDomain_Delete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.InsertFixtures(ctx)

	categoryDomain := NewCategoryDomain(repository.NewCategoryRepository(), &testutil.MockDiscordEndpoint{})

	_, err := categoryDomain.Delete(ctx, &model.DeleteCategoryRequest{ID: testutil.CategoryOneshot.ID})
	require.NoError(t, err)

	list, err := categoryDomain.GetList(ctx, &model.GetCategoriesRequest{})
	require.NoError(t, err)
	require.Len(t, list.Categories, 1)
}
