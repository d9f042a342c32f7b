package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slackclone/apiclient/client/internal/types"
)

const wsID = "3ea7a8b3-93b4-44d1-b18e-f0a5b76ae31c"

func TestCreateWorkspace_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body types.CreateWorkspaceRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeEnvelope(w, http.StatusCreated, types.Workspace{ID: wsID, Name: body.Name, Username: body.Username, MemberCount: 1})
	}))
	defer srv.Close()
	got, err := CreateWorkspace(context.Background(), newTestSender(srv.URL), types.CreateWorkspaceRequest{Name: "Acme", Username: "acme", Logo: "https://example.com/l.png"})
	if err != nil || got.ID != wsID || got.Name != "Acme" || got.MemberCount != 1 {
		t.Fatalf("CreateWorkspace unexpected: got=%+v err=%v", got, err)
	}
}

func TestListWorkspaces_DefaultsAndQuery(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("Page") != "1" || q.Get("Limit") != "10" {
			t.Errorf("unexpected query %v", q)
		}
		writeEnvelope(w, http.StatusOK, []types.Workspace{{ID: wsID}})
	}))
	defer srv.Close()
	got, err := ListWorkspaces(context.Background(), newTestSender(srv.URL), types.ListWorkspacesParams{})
	if err != nil || len(got) != 1 || got[0].ID != wsID {
		t.Fatalf("ListWorkspaces unexpected: got=%+v err=%v", got, err)
	}
}

func TestListWorkspaces_NullData(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, nil)
	}))
	defer srv.Close()
	got, err := ListWorkspaces(context.Background(), newTestSender(srv.URL), types.ListWorkspacesParams{Page: 2, Limit: 5})
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice: got=%+v err=%v", got, err)
	}
}

func TestGetWorkspace(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/workspaces/"+wsID {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeEnvelope(w, http.StatusOK, types.Workspace{ID: wsID, Name: "Acme"})
	}))
	defer srv.Close()
	got, err := GetWorkspace(context.Background(), newTestSender(srv.URL), wsID)
	if err != nil || got.Name != "Acme" {
		t.Fatalf("GetWorkspace unexpected: got=%+v err=%v", got, err)
	}
}

func TestJoinWorkspace(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body types.JoinWorkspaceRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if r.URL.Path != "/workspaces/join" || body.WorkspaceID != wsID {
			t.Errorf("unexpected join %s %+v", r.URL.Path, body)
		}
		writeEnvelope(w, http.StatusOK, nil)
	}))
	defer srv.Close()
	if err := JoinWorkspace(context.Background(), newTestSender(srv.URL), wsID); err != nil {
		t.Fatalf("JoinWorkspace error: %v", err)
	}
}

func TestWorkspaces_InvalidID(t *testing.T) {
	t.Parallel()
	s := newTestSender("http://127.0.0.1:1")
	if _, err := GetWorkspace(context.Background(), s, "1"); err == nil {
		t.Fatal("expected error for GetWorkspace")
	}
	if err := JoinWorkspace(context.Background(), s, ""); err == nil {
		t.Fatal("expected error for JoinWorkspace")
	}
	if s.sent != 0 {
		t.Fatal("requests sent for invalid ids")
	}
}

func TestWorkspaces_HTTPError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	s := newTestSender(srv.URL)
	if _, err := GetWorkspace(context.Background(), s, wsID); err == nil {
		t.Fatal("expected HTTP error for GetWorkspace")
	}
	if _, err := ListWorkspaces(context.Background(), s, types.ListWorkspacesParams{}); err == nil {
		t.Fatal("expected HTTP error for ListWorkspaces")
	}
}
