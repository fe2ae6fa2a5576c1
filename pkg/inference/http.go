package inference

import (
	"context"
	"net/http"
	"net/http/httptrace"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nerlens/nerlens/internal"
)

const (
	retryWaitMin = 250 * time.Millisecond
	retryWaitMax = 5 * time.Second
)

// NewRetryableHTTPClient returns a new retryable HTTP client with the given retryMax and
// per-attempt timeout. Once retries are exhausted the last response is handed back
// unchanged so its error body can be reported. The retryable transport is wrapped in
// an OpenTelemetry transport.
func NewRetryableHTTPClient(retryMax int, timeout time.Duration) *http.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = retryMax
	retryableHTTPClient.RetryWaitMin = retryWaitMin
	retryableHTTPClient.RetryWaitMax = retryWaitMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.Logger = internal.NewLeveledLogrus(internal.GetLogger())
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = retryablehttp.DefaultRetryPolicy
	retryableHTTPClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(
			retryableHTTPClient.StandardClient().Transport,
			otelhttp.WithClientTrace(func(ctx context.Context) *httptrace.ClientTrace {
				return otelhttptrace.NewClientTrace(ctx)
			}),
		),
	}

	return httpClient
}
