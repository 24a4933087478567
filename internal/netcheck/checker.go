package netcheck

import (
	"context"
	"net/http"
	"time"

	"preflight/pkg/logging"
)

const netcheckSubsystem = "NetCheck"

// Result is the outcome of probing a single endpoint.
type Result struct {
	// Endpoint is the URL that was probed.
	Endpoint string
	// Reachable is true when a response was received, regardless of its
	// HTTP status code.
	Reachable bool
	// Latency is the time until the response arrived. Zero when unreachable.
	Latency time.Duration
	// Kind categorizes the failure for the diagnostic. FailureNone when
	// reachable.
	Kind FailureKind
	// Reason is the underlying error when unreachable.
	Reason error
}

// Checker probes vendor endpoints with a bounded per-request timeout.
type Checker struct {
	client *http.Client
}

// NewChecker creates a Checker whose requests time out after the given
// duration.
func NewChecker(timeout time.Duration) *Checker {
	return &Checker{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ProbeAll probes every endpoint in order, one attempt each, and returns
// one Result per endpoint in the same order. It never stops early: the
// operator gets the complete remediation list in one run.
func (c *Checker) ProbeAll(ctx context.Context, endpoints []string) []Result {
	results := make([]Result, 0, len(endpoints))
	for _, endpoint := range endpoints {
		results = append(results, c.probe(ctx, endpoint))
	}
	return results
}

func (c *Checker) probe(ctx context.Context, endpoint string) Result {
	logging.Debug(netcheckSubsystem, "Probing %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{Endpoint: endpoint, Kind: FailureUnknown, Reason: err}
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		kind := classifyFailure(err)
		logging.Debug(netcheckSubsystem, "%s unreachable (%s): %v", endpoint, kind, err)
		return Result{Endpoint: endpoint, Kind: kind, Reason: err}
	}
	defer resp.Body.Close()

	// Any response counts as reachable. A 403 from a CDN still proves the
	// network path works.
	return Result{
		Endpoint:  endpoint,
		Reachable: true,
		Latency:   time.Since(started),
	}
}

// Unreachable filters results down to the endpoints that failed,
// preserving probe order.
func Unreachable(results []Result) []string {
	var failed []string
	for _, r := range results {
		if !r.Reachable {
			failed = append(failed, r.Endpoint)
		}
	}
	return failed
}
