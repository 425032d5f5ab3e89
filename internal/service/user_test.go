package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"Vidtube/internal/apperror"
	"Vidtube/internal/auth"
	"Vidtube/internal/media"
	"Vidtube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	svc      UserService
	users    *fakeUserRepo
	uploader *fakeUploader
	janitor  *fakeJanitor
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:    newFakeUserRepo(),
		uploader: &fakeUploader{},
		janitor:  &fakeJanitor{},
	}
	tokens := auth.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	f.svc = NewUserService(f.users, tokens, f.uploader, f.janitor)
	return f
}

func assertStatus(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, status, appErr.StatusCode)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func registerInput() RegisterInput {
	return RegisterInput{
		FullName:   "  Alice Doe ",
		Email:      "Alice@Example.com",
		Username:   "Alice",
		Password:   "Passw0rd!",
		AvatarPath: "/tmp/avatar.png",
	}
}

func TestUserService_Register(t *testing.T) {
	f := newUserFixture()

	user, err := f.svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice Doe", user.FullName)
	assert.NotEqual(t, "Passw0rd!", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "Passw0rd!"))
	assert.NotEmpty(t, user.AvatarURL)
	assert.Empty(t, user.CoverURL)
	assert.Equal(t, []media.Kind{media.KindAvatar}, f.uploader.uploads)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	f := newUserFixture()
	_, err := f.svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Username = "someone-else"
	_, err = f.svc.Register(context.Background(), in)
	assertStatus(t, err, http.StatusConflict, "Email or username already exists")
}

func TestUserService_Register_AvatarRequired(t *testing.T) {
	f := newUserFixture()
	in := registerInput()
	in.AvatarPath = ""

	_, err := f.svc.Register(context.Background(), in)
	assertStatus(t, err, http.StatusBadRequest, "Avatar is required")
	assert.Empty(t, f.users.users)
}

func TestUserService_Register_CoverFailureDiscardsAvatar(t *testing.T) {
	f := newUserFixture()
	f.uploader.failKind = media.KindCover
	in := registerInput()
	in.CoverPath = "/tmp/cover.png"

	_, err := f.svc.Register(context.Background(), in)
	assertStatus(t, err, http.StatusInternalServerError, "Cover image upload failed")
	assert.Len(t, f.janitor.discarded, 1)
	assert.Empty(t, f.users.users)
}

func TestUserService_Login(t *testing.T) {
	f := newUserFixture()
	_, err := f.svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		user, pair, err := f.svc.Login(context.Background(), "", "ALICE", "Passw0rd!")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, pair.AccessToken)
		assert.Equal(t, pair.RefreshToken, f.users.users[user.ID].RefreshToken)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, _, err := f.svc.Login(context.Background(), "alice@example.com", "", "nope")
		assertStatus(t, err, http.StatusUnauthorized, "Invalid user credentials")
	})
	t.Run("unknown user", func(t *testing.T) {
		_, _, err := f.svc.Login(context.Background(), "", "bob", "Passw0rd!")
		assertStatus(t, err, http.StatusUnauthorized, "Invalid user credentials")
	})
	t.Run("no identifier", func(t *testing.T) {
		_, _, err := f.svc.Login(context.Background(), " ", "", "Passw0rd!")
		assertStatus(t, err, http.StatusBadRequest, "Username or email is required")
	})
}

func TestUserService_RefreshRotatesToken(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	_, err := f.svc.Register(ctx, registerInput())
	require.NoError(t, err)
	_, first, err := f.svc.Login(ctx, "", "alice", "Passw0rd!")
	require.NoError(t, err)

	second, err := f.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// 旧的refresh token只能用一次
	_, err = f.svc.Refresh(ctx, first.RefreshToken)
	assertStatus(t, err, http.StatusUnauthorized, "Refresh token is expired or used")

	_, err = f.svc.Refresh(ctx, second.RefreshToken)
	assert.NoError(t, err)
}

func TestUserService_RefreshAfterLogout(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	user, err := f.svc.Register(ctx, registerInput())
	require.NoError(t, err)
	_, pair, err := f.svc.Login(ctx, "", "alice", "Passw0rd!")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, user.ID))

	_, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assertStatus(t, err, http.StatusUnauthorized, "")
}

func TestUserService_RefreshRejectsGarbage(t *testing.T) {
	f := newUserFixture()
	_, err := f.svc.Refresh(context.Background(), "not-a-jwt")
	assertStatus(t, err, http.StatusUnauthorized, "Invalid refresh token")
}

func TestUserService_ChangePassword(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	user, err := f.svc.Register(ctx, registerInput())
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, user.ID, "wrong", "N3wPassw0rd!")
	assertStatus(t, err, http.StatusBadRequest, "Invalid old password")

	require.NoError(t, f.svc.ChangePassword(ctx, user.ID, "Passw0rd!", "N3wPassw0rd!"))
	_, _, err = f.svc.Login(ctx, "", "alice", "Passw0rd!")
	assertStatus(t, err, http.StatusUnauthorized, "")
	_, _, err = f.svc.Login(ctx, "", "alice", "N3wPassw0rd!")
	assert.NoError(t, err)
}

func TestUserService_UpdateAccount_EmailTaken(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.users.add(model.User{Username: "bob", Email: "bob@example.com"})
	alice, err := f.svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = f.svc.UpdateAccount(ctx, alice.ID, "Alice", "BOB@example.com")
	assertStatus(t, err, http.StatusConflict, "Email already in use")

	updated, err := f.svc.UpdateAccount(ctx, alice.ID, "Alice Cooper", "alice@new.example")
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.FullName)
	assert.Equal(t, "alice@new.example", updated.Email)
}

func TestUserService_UpdateAvatarDiscardsOld(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	user, err := f.svc.Register(ctx, registerInput())
	require.NoError(t, err)
	oldURL := user.AvatarURL

	updated, err := f.svc.UpdateAvatar(ctx, user.ID, "/tmp/new.png")
	require.NoError(t, err)

	assert.NotEqual(t, oldURL, updated.AvatarURL)
	assert.Equal(t, []string{oldURL}, f.janitor.discarded)
}

func TestUserService_ChannelProfile(t *testing.T) {
	f := newUserFixture()
	_, err := f.svc.ChannelProfile(context.Background(), "  ", 0)
	assertStatus(t, err, http.StatusBadRequest, "Username is missing")

	_, err = f.svc.ChannelProfile(context.Background(), "ghost", 0)
	assertStatus(t, err, http.StatusNotFound, "Channel does not exist")
}
