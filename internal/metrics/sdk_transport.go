package metrics

import (
	"net/http"
	"time"
)

// AliasHeader is used to label outgoing requests, it is removed before sending
const AliasHeader = "X-Metrics-Alias"

type RequestWatcher struct {
	name string
	next http.RoundTripper
}

func NewRequestWatcher(name string) *RequestWatcher {
	return &RequestWatcher{
		name: name,
		next: http.DefaultTransport,
	}
}

func (m *RequestWatcher) RoundTrip(r *http.Request) (*http.Response, error) {
	alias := r.Header.Get(AliasHeader)
	if alias != "" {
		r = r.Clone(r.Context())
		r.Header.Del(AliasHeader)
	}

	var err error
	defer func(start time.Time) {
		CollectRequestsMetric(m.name, alias, err, start)
	}(time.Now())

	resp, err := m.next.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		err = errServerSide
	}

	return resp, nil
}
