package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(jsonEnvelope([]Asset{}, ""))
	})
	_ = srv

	_, err := client.ListAssets()
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	srv, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assets", r.URL.Path)
		w.Write(jsonEnvelope([]Asset{}, ""))
	})

	client := NewClient(srv.URL+"/", "test-key")
	_, err := client.ListAssets()
	require.NoError(t, err)
}

func TestClientSetAPIKey(t *testing.T) {
	var gotAuth string
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(jsonEnvelope([]Asset{}, ""))
	})
	_ = srv

	client.SetAPIKey("rotated")
	_, err := client.ListAssets()
	require.NoError(t, err)
	assert.Equal(t, "Bearer rotated", gotAuth)
}

func TestNonSuccessEnvelopeBecomesStatusError(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(jsonFailure("error", "channel url already registered"))
	})
	_ = srv

	_, _, err := client.CreateAsset(AssetInput{ChannelName: "Alpha"})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "error", statusErr.Status)
	assert.Equal(t, "channel url already registered", statusErr.Message)
	assert.Equal(t, "channel url already registered", statusErr.Error())
}

func TestHTTPErrorWithEnvelopeBodyBecomesStatusError(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write(jsonFailure("fail", "validation failed"))
	})
	_ = srv

	_, err := client.ListAssets()
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "validation failed", statusErr.Message)
}

func TestHTTPErrorWithoutEnvelopeIsPlainError(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream blew up"))
	})
	_ = srv

	_, err := client.ListAssets()
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
	assert.Contains(t, err.Error(), "502")
}

func TestStatusErrorFallsBackToStatus(t *testing.T) {
	err := &StatusError{Status: "forbidden"}
	assert.Equal(t, "forbidden", err.Error())
}

func TestTransportFailureIsNotStatusError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key")

	_, err := client.ListAssets()
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
