package client

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// debugTransport dumps every request and response at debug level.
//
// Enable with SLACKCLONE_DEBUG=true or DEBUG=true, or WithDebugLogging(true).
// Each request gets an X-Request-ID (unless the caller set one) so the two
// dumps can be correlated with server logs. Bodies are logged in full; only
// the Authorization value is redacted.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	out := req.Clone(req.Context())
	requestID := out.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
		out.Header.Set("X-Request-ID", requestID)
	}

	auth := out.Header.Get("Authorization")
	if auth != "" {
		out.Header.Set("Authorization", "Bearer [redacted]")
	}
	if reqDump, err := httputil.DumpRequestOut(out, true); err == nil {
		log.Debug().Str("request_id", requestID).Str("method", out.Method).Str("url", out.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}
	if auth != "" {
		out.Header.Set("Authorization", auth)
	}

	resp, err := base.RoundTrip(out)
	if err != nil {
		log.Debug().Err(err).Str("request_id", requestID).Str("method", out.Method).Str("url", out.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("request_id", requestID).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether SLACKCLONE_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("SLACKCLONE_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

// restyLogger routes resty's own diagnostics into zerolog.
type restyLogger struct{ l zerolog.Logger }

var _ resty.Logger = restyLogger{}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.l.Error().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.l.Warn().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}
