package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/slackclone/apiclient/credential"
	"github.com/slackclone/apiclient/internal/fakeapi"
)

type harness struct {
	t         *testing.T
	api       *fakeapi.Server
	srv       *httptest.Server
	tokenFile string
	opened    []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := fakeapi.New(fakeapi.Options{BcryptCost: bcrypt.MinCost})
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return &harness{t: t, api: api, srv: srv, tokenFile: filepath.Join(t.TempDir(), "storage.json")}
}

// exec runs one CLI invocation and returns stdout and stderr.
func (h *harness) exec(args ...string) (string, string, error) {
	h.t.Helper()
	a := &app{openBrowser: func(url string) error {
		h.opened = append(h.opened, url)
		return nil
	}}
	root := newRootCmd(a)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	base := []string{"--api-url", h.srv.URL + fakeapi.BasePath, "--app-url", "http://app.test", "--token-file", h.tokenFile}
	root.SetArgs(append(base, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (h *harness) token() string {
	h.t.Helper()
	tok, _, err := credential.NewFile(h.tokenFile).Get(context.Background())
	require.NoError(h.t, err)
	return tok
}

func TestCLI_Ping(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.exec("ping")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"pong"}`, out)
}

func TestCLI_RegisterProfileLogout(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.exec("register", "--name", "John Doe", "--email", "john@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, `"email": "john@example.com"`)
	require.NotEmpty(t, h.token())

	out, _, err = h.exec("profile")
	require.NoError(t, err)
	var user map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "John Doe", user["name"])

	out, _, err = h.exec("status")
	require.NoError(t, err)
	var st status
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.True(t, st.LoggedIn)
	assert.Equal(t, "1", st.UserID)
	assert.Equal(t, "john@example.com", st.Email)
	assert.False(t, st.Expired)
	require.NotNil(t, st.ExpiresAt)

	_, _, err = h.exec("logout")
	require.NoError(t, err)
	assert.Empty(t, h.token())

	out, _, err = h.exec("status")
	require.NoError(t, err)
	assert.Contains(t, out, `"logged_in": false`)
}

func TestCLI_ExpiredSessionClearsTokenAndOpensLogin(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.exec("register", "--name", "Jane", "--email", "jane@example.com", "--password", "secret1")
	require.NoError(t, err)

	h.api.Revoke(h.token())

	_, errOut, err := h.exec("profile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Empty(t, h.token(), "token survived a 401")
	assert.Equal(t, []string{"http://app.test/login"}, h.opened)
	assert.Contains(t, errOut, "Session expired. Log in again at http://app.test/login")
	assert.Contains(t, errOut, "API Error: Invalid or expired token")
}

func TestCLI_NoBrowser(t *testing.T) {
	h := newHarness(t)
	_, errOut, err := h.exec("--no-browser", "profile")
	require.Error(t, err)
	assert.Empty(t, h.opened)
	assert.Contains(t, errOut, "Session expired")
	assert.Contains(t, errOut, "API Error: Authorization header required")
}

func TestCLI_Workspaces(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.exec("register", "--name", "Owner", "--email", "owner@example.com", "--password", "secret1")
	require.NoError(t, err)

	out, _, err := h.exec("workspaces", "create", "--name", "Acme", "--username", "acme", "--logo", "https://example.com/logo.png")
	require.NoError(t, err)
	var ws map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &ws))
	id, _ := ws["id"].(string)
	require.NotEmpty(t, id)

	out, _, err = h.exec("workspaces", "get", id)
	require.NoError(t, err)
	assert.Contains(t, out, `"username": "acme"`)

	out, _, err = h.exec("ws", "list", "--limit", "5")
	require.NoError(t, err)
	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "accepted", list[0]["status"])

	_, _, err = h.exec("register", "--name", "Guest", "--email", "guest@example.com", "--password", "secret1")
	require.NoError(t, err)
	out, _, err = h.exec("workspaces", "join", id)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "pending"`)

	_, _, err = h.exec("workspaces", "get", "not-a-uuid")
	require.Error(t, err)
}

func TestCLI_InvalidFlags(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.exec("--app-url", "relative", "ping")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "APP_URL"))

	_, _, err = h.exec("login", "--email", "a@b.co")
	require.Error(t, err, "missing required flag accepted")
}
