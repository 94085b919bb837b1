package investor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rise-platform/rise-edge/internal/api"
	"github.com/rise-platform/rise-edge/internal/auth"
)

type suggesterStub struct {
	list   []Suggestion
	err    error
	header string
}

func (s *suggesterStub) Suggest(_ context.Context, header string) ([]Suggestion, error) {
	s.header = header

	return s.list, s.err
}

func TestUnitSuggestionsServer(t *testing.T) {
	for name, tc := range map[string]struct {
		method string
		list   []Suggestion
		err    error
		code   int
		resp   string
	}{
		"get": {
			method: http.MethodGet,
			list:   []Suggestion{Suggestion(`{"id":"4","startupName":"Tamr Labs","matchScore":91,"highlights":["Revenue"]}`)},
			code:   http.StatusOK,
			resp:   `[{"id":"4","startupName":"Tamr Labs","matchScore":91,"highlights":["Revenue"]}]`,
		},
		"post empty": {
			method: http.MethodPost,
			list:   []Suggestion{},
			code:   http.StatusOK,
			resp:   `[]`,
		},
		"missing token": {
			method: http.MethodGet,
			err:    auth.ErrMissingToken,
			code:   http.StatusUnauthorized,
			resp:   `{"error":"missing authorization header"}`,
		},
		"auth service down": {
			method: http.MethodGet,
			err:    errors.New("get user: unexpected status 503"),
			code:   http.StatusInternalServerError,
			resp:   `{"error":"get user: unexpected status 503"}`,
		},
		"unknown investor": {
			method: http.MethodGet,
			err:    ErrInvestorNotFound,
			code:   http.StatusNotFound,
			resp:   `{"error":"investor profile not found"}`,
		},
		"provider down": {
			method: http.MethodGet,
			err:    errors.New("generate suggestions: timeout"),
			code:   http.StatusInternalServerError,
			resp:   `{"error":"generate suggestions: timeout"}`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			stub := &suggesterStub{list: tc.list, err: tc.err}
			h := api.NewRouter("*", NewServer(stub))

			req := httptest.NewRequest(tc.method, "/functions/v1/get-investor-suggestions", nil)
			req.Header.Set("Authorization", "Bearer investor-jwt")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tc.code, rec.Code)
			require.JSONEq(t, tc.resp, rec.Body.String())
			require.Equal(t, "Bearer investor-jwt", stub.header)
		})
	}
}
