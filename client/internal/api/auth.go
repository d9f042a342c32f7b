package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/slackclone/apiclient/client/internal/types"
)

// Register creates an account. The caller is responsible for storing the
// returned token.
func Register(ctx context.Context, s Sender, req types.RegisterRequest) (*types.AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRegisterRequest(req); err != nil {
		return nil, err
	}
	resp, err := s.Send(ctx, &types.Request{Method: http.MethodPost, Path: "/auth/register", Body: req})
	if err != nil {
		return nil, err
	}
	if err := expectStatus("register", resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return decodeAuth("register", resp)
}

// Login exchanges credentials for a session token.
func Login(ctx context.Context, s Sender, req types.LoginRequest) (*types.AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateLoginRequest(req); err != nil {
		return nil, err
	}
	resp, err := s.Send(ctx, &types.Request{Method: http.MethodPost, Path: "/auth/login", Body: req})
	if err != nil {
		return nil, err
	}
	if err := expectStatus("login", resp, http.StatusOK); err != nil {
		return nil, err
	}
	return decodeAuth("login", resp)
}

// Profile returns the user the stored token belongs to.
func Profile(ctx context.Context, s Sender) (*types.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := s.Send(ctx, &types.Request{Method: http.MethodGet, Path: "/auth/profile"})
	if err != nil {
		return nil, err
	}
	if err := expectStatus("profile", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var user types.User
	if err := decodeData(resp, &user); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &user, nil
}

func decodeAuth(op string, resp *resty.Response) (*types.AuthResponse, error) {
	var auth types.AuthResponse
	if err := decodeData(resp, &auth); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if auth.Token == "" {
		return nil, fmt.Errorf("%s: response carried no token", op)
	}
	return &auth, nil
}
