package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/slackclone/apiclient/credential"
)

func TestStatusClass(t *testing.T) {
	cases := map[int]string{0: "none", 200: "2xx", 401: "4xx", 503: "5xx"}
	for code, want := range cases {
		if got := statusClass(code); got != want {
			t.Errorf("statusClass(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestMetrics_UnauthorizedExchange(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusUnauthorized, `{}`))
	defer srv.Close()

	requests := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "4xx"))
	authErrors := testutil.ToFloat64(apiErrorsTotal.WithLabelValues(CategoryAuthentication.String()))
	expired := testutil.ToFloat64(sessionExpiredTotal)

	c := newTestClient(t, srv, WithCredentialStore(credential.NewMemory("abc")), WithLogger(zerologNop()))
	_, _ = c.Get(context.Background(), "/orders")

	if d := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "4xx")) - requests; d != 1 {
		t.Errorf("requests_total delta = %v", d)
	}
	if d := testutil.ToFloat64(apiErrorsTotal.WithLabelValues(CategoryAuthentication.String())) - authErrors; d != 1 {
		t.Errorf("api_errors_total delta = %v", d)
	}
	if d := testutil.ToFloat64(sessionExpiredTotal) - expired; d != 1 {
		t.Errorf("session_expired_total delta = %v", d)
	}
}
