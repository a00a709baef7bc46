package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMLClient_Classify(t *testing.T) {
	t.Run("successful classification", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/classify", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "req-123", r.Header.Get("X-Request-ID"))

			var req ClassifyRequest
			err := json.NewDecoder(r.Body).Decode(&req)
			require.NoError(t, err)
			assert.Equal(t, "what a lovely day", req.Text)
			assert.Equal(t, "req-123", req.RequestID)

			resp := ClassifyResponse{
				Success:      true,
				Predictions:  []Prediction{{Label: "POSITIVE", Score: 0.9991}},
				ModelVersion: "sst2-v1",
				RequestID:    "req-123",
			}
			w.Header().Set("Content-Type", "application/json")
			err = json.NewEncoder(w).Encode(resp)
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		result, err := client.Classify(context.Background(), "what a lovely day", "req-123")

		require.NoError(t, err)
		assert.True(t, result.Success)
		require.Len(t, result.Predictions, 1)
		assert.Equal(t, "POSITIVE", result.Predictions[0].Label)
		assert.Equal(t, 0.9991, result.Predictions[0].Score)
		assert.Equal(t, "sst2-v1", result.ModelVersion)
	})

	t.Run("trailing slash in base url", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/classify", r.URL.Path)
			_ = json.NewEncoder(w).Encode(ClassifyResponse{Success: true})
		}))
		defer server.Close()

		client := NewMLClient(server.URL+"/", 5*time.Second)
		_, err := client.Classify(context.Background(), "text", "")

		assert.NoError(t, err)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, err := w.Write([]byte("internal error"))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		_, err := client.Classify(context.Background(), "test", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "internal error")
	})

	t.Run("unsuccessful payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(ClassifyResponse{Success: false, Error: "input too long"})
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		_, err := client.Classify(context.Background(), "test", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "input too long")
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		_, err := client.Classify(context.Background(), "test", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode response")
	})

	t.Run("connection error", func(t *testing.T) {
		client := NewMLClient("http://localhost:99999", 1*time.Second)
		_, err := client.Classify(context.Background(), "test", "")

		assert.Error(t, err)
	})
}

func TestMLClient_Health(t *testing.T) {
	t.Run("healthy service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			assert.Equal(t, "GET", r.Method)

			resp := HealthResponse{
				Status:       "healthy",
				ModelLoaded:  true,
				ModelVersion: "sst2-v1",
			}
			w.Header().Set("Content-Type", "application/json")
			err := json.NewEncoder(w).Encode(resp)
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		result, err := client.Health(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "healthy", result.Status)
		assert.True(t, result.ModelLoaded)
	})
}

func TestMLClient_Ready(t *testing.T) {
	t.Run("ready service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ready", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		err := client.Ready(context.Background())

		assert.NoError(t, err)
	})

	t.Run("not ready service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		err := client.Ready(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not ready")
	})
}
