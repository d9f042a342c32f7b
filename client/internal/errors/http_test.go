package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/slackclone/apiclient/client/internal/types"
)

func TestExtractMessage(t *testing.T) {
	t.Parallel()
	cases := []struct {
		body string
		want string
	}{
		{`{"message":"token expired"}`, "token expired"},
		{`{"success":false,"message":"Invalid credentials","code":401}`, "Invalid credentials"},
		{`{"message":""}`, DefaultMessage},
		{`{"message":42}`, DefaultMessage},
		{`{"error":"nope"}`, DefaultMessage},
		{`<html>bad gateway</html>`, DefaultMessage},
		{``, DefaultMessage},
	}
	for _, c := range cases {
		if got := ExtractMessage([]byte(c.body)); got != c.want {
			t.Fatalf("ExtractMessage(%q) = %q, want %q", c.body, got, c.want)
		}
	}
}

func TestClassifyStatus(t *testing.T) {
	t.Parallel()
	cases := map[int]Category{
		401: Authentication,
		400: Client,
		403: Client,
		404: Client,
		429: Client,
		500: Server,
		503: Server,
	}
	for code, want := range cases {
		if got := ClassifyStatus(code); got != want {
			t.Fatalf("ClassifyStatus(%d) = %s, want %s", code, got, want)
		}
	}
}

func TestHTTPErrorNotFound(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("get workspace: %w", NewHTTPError("GET", "http://x/workspaces/1", 404, nil))
	if !stderrors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected 404 to match ErrNotFound: %v", err)
	}
	if stderrors.Is(NewHTTPError("GET", "http://x", 500, nil), types.ErrNotFound) {
		t.Fatal("500 must not match ErrNotFound")
	}
	var he *HTTPError
	if !stderrors.As(err, &he) || he.Message != DefaultMessage {
		t.Fatalf("unexpected error shape: %+v", he)
	}
}

func TestCategoryString(t *testing.T) {
	t.Parallel()
	if Authentication.String() != "Authentication" || Category(99).String() != "Unknown(99)" {
		t.Fatal("unexpected category names")
	}
}
