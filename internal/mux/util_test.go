package mux

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != statusCode {
		t.Fatalf("expected status code %d, got %d", statusCode, resp.StatusCode)
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Fatal(err)
		}
	}
}

func TestParsePaginationOptions(t *testing.T) {
	a := assert.New(t)

	get := func(query string) *http.Request {
		return httptest.NewRequest(http.MethodGet, "/game?"+query, nil)
	}

	start, rows, err := parsePaginationOptions(get(""))
	a.NoError(err)
	a.Equal(0, start)
	a.Equal(defaultRows, rows)

	start, rows, err = parsePaginationOptions(get("start=20&rows=10"))
	a.NoError(err)
	a.Equal(20, start)
	a.Equal(10, rows)

	_, _, err = parsePaginationOptions(get("start=-1"))
	a.EqualError(err, "start cannot be less than zero")

	_, _, err = parsePaginationOptions(get("rows=0"))
	a.EqualError(err, "rows must be greater than zero")

	_, _, err = parsePaginationOptions(get("rows=101"))
	a.EqualError(err, "rows cannot be greater than 100")

	_, _, err = parsePaginationOptions(get("rows=nope"))
	a.Error(err)
}
