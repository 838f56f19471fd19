package domain

import (
	"context"
	"testing"
	"time"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/api/discord"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/jwt"
	"github.com/questmaster/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestUserDomain(endpoint *testutil.MockDiscordEndpoint) UserDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		endpoint,
		&testutil.MockRedisClient{},
		jwt.NewEngine[model.AccessToken]("secret", time.Minute),
	)
}

func Test_userDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()

	endpoint := &testutil.MockDiscordEndpoint{
		GetMemberFunc: func(ctx context.Context, userID string) (discord.Member, error) {
			return discord.Member{
				ID:       userID,
				Username: "frank",
				Nick:     "Frank le Brave",
				Roles:    []string{"gm-role"},
			}, nil
		},
	}
	userDomain := newTestUserDomain(endpoint)

	resp, err := userDomain.Login(ctx, &model.LoginRequest{UserID: "200000000000000001"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "Frank le Brave", resp.User.Username)
	require.True(t, resp.User.IsGM)

	user, err := repository.NewUserRepository().GetByID(ctx, "200000000000000001")
	require.NoError(t, err)
	require.Equal(t, entity.GMRole, user.Role)
	require.Equal(t, "frank-le-brave", user.SlugName)
}

func Test_userDomain_Login_invalidID(t *testing.T) {
	ctx := testutil.MockContext()

	userDomain := newTestUserDomain(&testutil.MockDiscordEndpoint{})

	_, err := userDomain.Login(ctx, &model.LoginRequest{UserID: "not-a-snowflake"})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_userDomain_Login_keepsAdminRole(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixtures(ctx)

	endpoint := &testutil.MockDiscordEndpoint{
		GetMemberFunc: func(ctx context.Context, userID string) (discord.Member, error) {
			return discord.Member{ID: userID, Username: "alice"}, nil
		},
	}
	userDomain := newTestUserDomain(endpoint)

	resp, err := userDomain.Login(ctx, &model.LoginRequest{UserID: testutil.Admin.ID})
	require.NoError(t, err)
	require.Equal(t, entity.AdminRole, resp.User.Role)
}

func Test_userDomain_RefreshProfile_roleChange(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixtures(ctx)

	// Player1 got the GM role on the guild since the last sync.
	endpoint := &testutil.MockDiscordEndpoint{
		GetMemberFunc: func(ctx context.Context, userID string) (discord.Member, error) {
			return discord.Member{
				ID:       userID,
				Username: testutil.Player1.Username,
				Roles:    []string{"gm-role"},
			}, nil
		},
	}
	userDomain := newTestUserDomain(endpoint)

	resp, err := userDomain.RefreshProfile(ctx, &model.RefreshProfileRequest{ID: testutil.Player1.ID})
	require.NoError(t, err)
	require.Equal(t, entity.GMRole, resp.User.Role)
}

func Test_userDomain_MarkNotPlayer(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixtures(ctx)

	userDomain := newTestUserDomain(&testutil.MockDiscordEndpoint{})

	_, err := userDomain.MarkNotPlayer(ctx, &model.MarkNotPlayerRequest{ID: testutil.Player1.ID})
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.Player1.ID)
	require.NoError(t, err)
	require.True(t, user.NotPlayerAsOf.Valid)

	resp, err := userDomain.GetUser(ctx, &model.GetUserRequest{ID: testutil.Player1.ID})
	require.NoError(t, err)
	require.False(t, resp.User.IsPlayer)

	_, err = userDomain.ClearNotPlayer(ctx, &model.ClearNotPlayerRequest{ID: testutil.Player1.ID})
	require.NoError(t, err)

	user, err = repository.NewUserRepository().GetByID(ctx, testutil.Player1.ID)
	require.NoError(t, err)
	require.False(t, user.NotPlayerAsOf.Valid)
}
