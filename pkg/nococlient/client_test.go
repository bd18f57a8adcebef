package nococlient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
	"github.com/fivetwenty-io/nocodb-client/pkg/nococlient"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := nococlient.New[nocodb.Record](nil)
		require.ErrorIs(t, err, nocodb.ErrNilConfig)
	})

	t.Run("missing base URL", func(t *testing.T) {
		t.Parallel()

		_, err := nococlient.New[nocodb.Record](&nocodb.Config{AuthToken: "secret"})
		require.ErrorIs(t, err, nocodb.ErrBaseURLRequired)
	})

	t.Run("creates a working client", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/invoices/count", request.URL.Path)
			assert.Equal(t, "secret", request.Header.Get("xc-auth"))
			_ = json.NewEncoder(writer).Encode(map[string]int{"count": 5})
		}))
		defer server.Close()

		client, err := nococlient.New[nocodb.Record](&nocodb.Config{
			BaseURL:   server.URL + "/api/v1/invoices/",
			AuthToken: "secret",
		})
		require.NoError(t, err)

		count, err := client.Count(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, 5, count)
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "invoice-sync/2.0", request.Header.Get("User-Agent"))
			_ = json.NewEncoder(writer).Encode(map[string]int{"count": 0})
		}))
		defer server.Close()

		client, err := nococlient.New[nocodb.Record](&nocodb.Config{
			BaseURL:   server.URL,
			AuthToken: "secret",
			UserAgent: "invoice-sync/2.0",
		})
		require.NoError(t, err)

		_, err = client.Count(context.Background(), "")
		require.NoError(t, err)
	})
}
