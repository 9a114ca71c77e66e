package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)

	_, err = NewClient("ftp://example.com")
	assert.Error(t, err)

	_, err = NewClient("://bad")
	assert.Error(t, err)

	c, err := NewClient("http://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", c.baseURL)
}

func TestClient_Score(t *testing.T) {
	var gotPath, gotContentType, gotRequestID string
	var gotBody scoreRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"name":"benzene","score":12.9658,"atom_count":6}`)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	result, err := c.Score(context.Background(), "fake molfile", false)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/score", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "fake molfile", gotBody.Molfile)
	assert.Equal(t, "benzene", result.Name)
	assert.InDelta(t, 12.9658, result.Score, 1e-4)
	assert.Equal(t, 6, result.AtomCount)
}

func TestClient_Score_Diagnostics(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		io.WriteString(w, `{"score":1}`)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Score(context.Background(), "fake molfile", true)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/score?diagnostics=true", gotPath)
}

func TestClient_Score_EmptyMolfile(t *testing.T) {
	c, err := NewClient("http://example.com")
	require.NoError(t, err)

	_, err = c.Score(context.Background(), "", false)
	assert.Error(t, err)
}

func TestClient_Score_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"code":"CPX_001","message":"unsupported element","detail":"element Fe"}`)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Score(context.Background(), "fake molfile", false)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "CPX_001", apiErr.Code)
	assert.Equal(t, "element Fe", apiErr.Detail)
	assert.True(t, apiErr.IsClientError())
	assert.False(t, apiErr.IsServerError())
	assert.Contains(t, apiErr.Error(), "CPX_001")
}

func TestClient_RetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, `{"score":1}`)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL,
		WithRetryMax(3),
		WithRetryWait(time.Millisecond, 2*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Score(context.Background(), "fake molfile", false)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"code":"MOL_002","message":"parse failure"}`)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL,
		WithRetryMax(3),
		WithRetryWait(time.Millisecond, 2*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Score(context.Background(), "fake molfile", false)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestClient_ScoreBatch(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		io.WriteString(w, `{"scored":1,"failed":1,"entries":[
			{"index":0,"result":{"name":"benzene","score":12.9658,"atom_count":6}},
			{"index":1,"error":{"code":"MOL_002","message":"parse failure"}}]}`)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	result, err := c.ScoreBatch(context.Background(), strings.NewReader("sdf stream"), false)
	require.NoError(t, err)

	assert.Equal(t, "text/plain", gotContentType)
	assert.Equal(t, "sdf stream", gotBody)
	assert.Equal(t, 1, result.Scored)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Entries, 2)
	require.NotNil(t, result.Entries[0].Result)
	assert.Equal(t, "benzene", result.Entries[0].Result.Name)
	require.NotNil(t, result.Entries[1].Error)
	assert.Equal(t, "MOL_002", result.Entries[1].Error.Code)
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/healthz", "/readyz":
			io.WriteString(w, `{"status":"alive"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	assert.NoError(t, c.Health(context.Background()))
	assert.NoError(t, c.Ready(context.Background()))
}

func TestClient_Options(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	c, err := NewClient("http://example.com",
		WithHTTPClient(hc),
		WithTimeout(2*time.Second),
		WithUserAgent("custom/1.0"),
		WithRetryMax(5),
	)
	require.NoError(t, err)
	assert.Same(t, hc, c.httpClient)
	assert.Equal(t, 2*time.Second, c.httpClient.Timeout)
	assert.Equal(t, "custom/1.0", c.userAgent)
	assert.Equal(t, 5, c.retryMax)
}
