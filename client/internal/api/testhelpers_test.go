package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/slackclone/apiclient/client/internal/types"
)

// testSender is a bare Sender: no credentials, non-2xx turned into errors.
type testSender struct {
	rc   *resty.Client
	sent int
}

func newTestSender(baseURL string) *testSender {
	return &testSender{rc: resty.New().SetBaseURL(baseURL).SetHeader("Content-Type", "application/json")}
}

func (s *testSender) Send(ctx context.Context, req *types.Request) (*resty.Response, error) {
	s.sent++
	r := s.rc.R().SetContext(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}
	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		return resp, err
	}
	if resp.IsError() {
		return resp, fmt.Errorf("status %d", resp.StatusCode())
	}
	return resp, nil
}

func writeEnvelope(w http.ResponseWriter, code int, data any) {
	raw, _ := json.Marshal(data)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.Envelope{Success: code < 400, Data: raw, Code: code})
}
