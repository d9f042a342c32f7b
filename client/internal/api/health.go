package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/slackclone/apiclient/client/internal/types"
)

// Ping calls the health endpoint. Its body is not enveloped.
func Ping(ctx context.Context, s Sender) (*types.PingResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := s.Send(ctx, &types.Request{Method: http.MethodGet, Path: "/ping"})
	if err != nil {
		return nil, err
	}
	if err := expectStatus("ping", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var pong types.PingResponse
	if err := json.Unmarshal(resp.Body(), &pong); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &pong, nil
}
