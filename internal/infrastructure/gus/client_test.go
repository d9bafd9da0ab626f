package gus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/translog/backend/internal/domain/shared/valueobject"
	"github.com/translog/backend/internal/infrastructure/config"
)

func newTestClient(t *testing.T, apiKey string, handler http.Handler) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.GUSConfig{
		BaseURL: server.URL,
		APIKey:  apiKey,
		Timeout: 2 * time.Second,
	}, nil)
}

func TestClient_Lookup(t *testing.T) {
	nip := valueobject.MustNewNIP("5260305006")

	t.Run("normalizes upper-cased registry fields", func(t *testing.T) {
		client := newTestClient(t, "secret", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/companies", r.URL.Path)
			assert.Equal(t, "5260305006", r.URL.Query().Get("nip"))
			assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"name": "TRANS-POL SPEDYCJA",
				"nip": "5260305006",
				"regon": "012100784",
				"street": "UL. PROSTA 51",
				"city": "WARSZAWA",
				"postal_code": "00-838"
			}`))
		}))

		record, err := client.Lookup(context.Background(), nip)

		require.NoError(t, err)
		assert.Equal(t, "Trans-Pol Spedycja", record.Name)
		assert.Equal(t, "5260305006", record.NIP)
		assert.Equal(t, "012100784", record.REGON)
		assert.Equal(t, "Ul. Prosta 51", record.Street)
		assert.Equal(t, "Warszawa", record.City)
		assert.Equal(t, "00-838", record.PostalCode)
	})

	t.Run("omits the api key header when not configured", func(t *testing.T) {
		client := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, present := r.Header["X-Api-Key"]
			assert.False(t, present)
			w.Write([]byte(`{"name": "FIRMA", "nip": "5260305006"}`))
		}))

		_, err := client.Lookup(context.Background(), nip)

		assert.NoError(t, err)
	})

	t.Run("maps 404 to company not found", func(t *testing.T) {
		client := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))

		_, err := client.Lookup(context.Background(), nip)

		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})

	t.Run("treats an empty record as not found", func(t *testing.T) {
		client := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"name": ""}`))
		}))

		_, err := client.Lookup(context.Background(), nip)

		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})

	t.Run("surfaces server errors", func(t *testing.T) {
		client := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))

		_, err := client.Lookup(context.Background(), nip)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 500")
	})
}
