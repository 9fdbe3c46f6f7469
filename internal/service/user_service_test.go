package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/haierkeys/bitshared-cli/internal/api/apitest"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*apitest.Backend, SessionStore, UserService) {
	t.Helper()
	b := apitest.New()
	t.Cleanup(b.Close)
	session := NewSessionStore(&memRepo{}, nil)
	return b, session, NewUserService(newClient(t, b), session, newValidator(t), nil)
}

func TestUser_LoginSavesSession(t *testing.T) {
	b, session, svc := newUserService(t)
	uid := b.AddUser("alice", "secret", domain.RoleMajorAdmin)

	user, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, uid, user.ID)

	cur := session.Current()
	assert.True(t, session.IsLoggedIn())
	assert.Equal(t, uid, cur.UserID)
	assert.Equal(t, domain.RoleMajorAdmin, cur.Role)
	assert.Equal(t, "alice", cur.Username)

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, session.IsLoggedIn())
}

func TestUser_LoginWrongPassword(t *testing.T) {
	b, session, svc := newUserService(t)
	b.AddUser("alice", "secret", domain.RoleNormal)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "bad"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorServer))
	assert.Contains(t, err.Error(), "用户名或密码错误")
	assert.False(t, session.IsLoggedIn())
}

func TestUser_RegisterIncompleteIsLocal(t *testing.T) {
	b, _, svc := newUserService(t)
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "bob", Password: " ", Email: "b@x.io"})
	assert.True(t, errors.Is(err, code.ErrorRegisterIncomplete))
	assert.Zero(t, b.Calls("/api"))
}

func TestUser_RegisterLogsIn(t *testing.T) {
	b, session, svc := newUserService(t)
	user, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "bob", Password: "pw", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNormal, user.Role)
	assert.Equal(t, user.ID, session.Current().UserID)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{Username: "bob", Password: "pw", Email: "bob@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "用户名已存在")
	assert.Equal(t, 2, b.Calls("/api/auth/register"))
}

func TestUser_SaveProfileCreatesThenUpdates(t *testing.T) {
	b, _, svc := newUserService(t)
	b.AddUser("alice", "pw", domain.RoleNormal)
	ctx := context.Background()
	_, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.FetchProfile(ctx)
	require.Error(t, err)

	p, err := svc.SaveProfile(ctx, &dto.ProfileRequest{Nickname: "Al", Bio: "hi", Major: "CS"})
	require.NoError(t, err)
	require.NotNil(t, p.Nickname)
	assert.Equal(t, "Al", *p.Nickname)

	p, err = svc.SaveProfile(ctx, &dto.ProfileRequest{Nickname: "Alice", Bio: "hi", Major: "CS"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", *p.Nickname)

	fetched, err := svc.FetchProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", fetched.DisplayName())

	req := ProfileToRequest(fetched)
	assert.Equal(t, "hi", req.Bio)
	assert.Nil(t, req.UserID)
}

func TestUser_SaveProfileServerErrorDoesNotCreate(t *testing.T) {
	b, _, svc := newUserService(t)
	uid := b.AddUser("alice", "pw", domain.RoleNormal)
	ctx := context.Background()
	_, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	before := b.Calls("/api/profile")
	b.FailNext("/api/profile/"+strconv.FormatInt(uid, 10), apitest.Fault{Status: http.StatusBadGateway})
	_, err = svc.SaveProfile(ctx, &dto.ProfileRequest{Nickname: "Al", Bio: "hi", Major: "CS"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorServer))
	// 只有 GET，没有 POST 创建
	assert.Equal(t, before+1, b.Calls("/api/profile"))

	_, err = svc.FetchProfile(ctx)
	require.Error(t, err)
}

func TestUser_ProfileRequiresLogin(t *testing.T) {
	_, _, svc := newUserService(t)
	_, err := svc.SaveProfile(context.Background(), &dto.ProfileRequest{Nickname: "x"})
	assert.True(t, errors.Is(err, code.ErrorNotLoggedIn))
}
