package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
)

// Register POST api/auth/register
func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	return c.authCall(ctx, "api/auth/register", req)
}

// Login POST api/auth/login
func (c *Client) Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error) {
	return c.authCall(ctx, "api/auth/login", req)
}

func (c *Client) authCall(ctx context.Context, p string, payload any) (*domain.User, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}
	return callEnvelopeData[domain.User](ctx, c, request{
		method:      http.MethodPost,
		path:        p,
		body:        body,
		contentType: contentTypeJSON,
	})
}

// GetProfile GET api/profile/{userId}, bare JSON
func (c *Client) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	var p domain.Profile
	err := c.call(ctx, request{method: http.MethodGet, path: "api/profile/" + strconv.FormatInt(userID, 10)}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProfile POST api/profile, bare JSON
func (c *Client) CreateProfile(ctx context.Context, req *dto.ProfileRequest) (*domain.Profile, error) {
	return c.profileWrite(ctx, http.MethodPost, "api/profile", req)
}

// UpdateProfile PUT api/profile/{userId}, bare JSON
func (c *Client) UpdateProfile(ctx context.Context, userID int64, req *dto.ProfileRequest) (*domain.Profile, error) {
	return c.profileWrite(ctx, http.MethodPut, "api/profile/"+strconv.FormatInt(userID, 10), req)
}

func (c *Client) profileWrite(ctx context.Context, method, p string, req *dto.ProfileRequest) (*domain.Profile, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	var out domain.Profile
	if err := c.call(ctx, request{method: method, path: p, body: body, contentType: contentTypeJSON}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckPermission GET api/permissions/check?userId&courseNo
func (c *Client) CheckPermission(ctx context.Context, userID, courseNo int64) (*domain.PermissionResult, error) {
	return callEnvelopeData[domain.PermissionResult](ctx, c, request{
		method: http.MethodGet,
		path:   "api/permissions/check",
		query: url.Values{
			"userId":   {strconv.FormatInt(userID, 10)},
			"courseNo": {strconv.FormatInt(courseNo, 10)},
		},
	})
}

// GrantPermission POST api/permissions/grant, returns the server message
func (c *Client) GrantPermission(ctx context.Context, req *dto.GrantRequest) (string, error) {
	return c.permissionCall(ctx, "api/permissions/grant", req)
}

// RevokePermission POST api/permissions/revoke, returns the server message
func (c *Client) RevokePermission(ctx context.Context, req *dto.RevokeRequest) (string, error) {
	return c.permissionCall(ctx, "api/permissions/revoke", req)
}

func (c *Client) permissionCall(ctx context.Context, p string, payload any) (string, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return "", err
	}
	data, msg, err := callEnvelope[string](ctx, c, request{
		method:      http.MethodPost,
		path:        p,
		body:        body,
		contentType: contentTypeJSON,
	})
	if err != nil {
		return "", err
	}
	if msg == "" && data != nil {
		msg = *data
	}
	return msg, nil
}
