package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/slackclone/apiclient/client/internal/types"
)

// CreateWorkspace creates a workspace; the creator becomes its admin.
func CreateWorkspace(ctx context.Context, s Sender, req types.CreateWorkspaceRequest) (*types.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateCreateWorkspaceRequest(req); err != nil {
		return nil, err
	}
	resp, err := s.Send(ctx, &types.Request{Method: http.MethodPost, Path: "/workspaces", Body: req})
	if err != nil {
		return nil, err
	}
	if err := expectStatus("create workspace", resp, http.StatusCreated); err != nil {
		return nil, err
	}
	var ws types.Workspace
	if err := decodeData(resp, &ws); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &ws, nil
}

// ListWorkspaces returns one page of the caller's workspaces. The query
// parameter names are the ones the backend binds ("Page", "Limit").
func ListWorkspaces(ctx context.Context, s Sender, params types.ListWorkspacesParams) ([]types.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	params, err := types.NormalizeListParams(params)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("Page", strconv.Itoa(params.Page))
	q.Set("Limit", strconv.Itoa(params.Limit))

	resp, err := s.Send(ctx, &types.Request{Method: http.MethodGet, Path: "/workspaces", Query: q})
	if err != nil {
		return nil, err
	}
	if err := expectStatus("list workspaces", resp, http.StatusOK); err != nil {
		return nil, err
	}
	workspaces := []types.Workspace{}
	if err := decodeData(resp, &workspaces); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return workspaces, nil
}

// GetWorkspace fetches a workspace by ID.
func GetWorkspace(ctx context.Context, s Sender, workspaceID string) (*types.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateWorkspaceID(workspaceID); err != nil {
		return nil, err
	}
	path := "/workspaces/" + url.PathEscape(workspaceID)
	resp, err := s.Send(ctx, &types.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	if err := expectStatus("get workspace", resp, http.StatusOK); err != nil {
		return nil, err
	}
	var ws types.Workspace
	if err := decodeData(resp, &ws); err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return &ws, nil
}

// JoinWorkspace asks to join a workspace.
func JoinWorkspace(ctx context.Context, s Sender, workspaceID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateWorkspaceID(workspaceID); err != nil {
		return err
	}
	body := types.JoinWorkspaceRequest{WorkspaceID: workspaceID}
	resp, err := s.Send(ctx, &types.Request{Method: http.MethodPost, Path: "/workspaces/join", Body: body})
	if err != nil {
		return err
	}
	return expectStatus("join workspace", resp, http.StatusOK)
}
