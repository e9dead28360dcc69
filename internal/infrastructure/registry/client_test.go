package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerhub/backend/internal/domain/company"
	infraconfig "github.com/brokerhub/backend/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&infraconfig.RegistryConfig{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewClient(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing base URL returns error", func(t *testing.T) {
		_, err := NewClient(&infraconfig.RegistryConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base URL is required")
	})

	t.Run("valid config creates client", func(t *testing.T) {
		client, err := NewClient(&infraconfig.RegistryConfig{
			BaseURL: "https://registry.test",
			APIKey:  "key",
		})
		require.NoError(t, err)
		require.NotNil(t, client)
	})
}

func TestClient_GetByNumber(t *testing.T) {
	t.Run("maps profile and officers", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/company/09876543", func(w http.ResponseWriter, r *http.Request) {
			user, _, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "test-api-key", user)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"company_number": "09876543",
				"company_name": "DOE BAKERY LTD",
				"company_status": "active",
				"type": "ltd",
				"date_of_creation": "2019-03-14",
				"sic_codes": ["10710"],
				"registered_office_address": {
					"address_line_1": "4 Mill Lane",
					"locality": "Leeds",
					"postal_code": "LS1 4AB",
					"country": "England"
				}
			}`))
		})
		mux.HandleFunc("/company/09876543/officers", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"items": [
					{"name": "DOE, Jane", "officer_role": "director", "appointed_on": "2019-03-14"}
				]
			}`))
		})

		client := newTestClient(t, mux)
		result, err := client.GetByNumber(context.Background(), "09876543")
		require.NoError(t, err)

		assert.Equal(t, "09876543", result.RegistrationNumber)
		assert.Equal(t, "DOE BAKERY LTD", result.Name)
		assert.Equal(t, "active", result.Status)
		assert.Equal(t, "ltd", result.Type)
		require.NotNil(t, result.IncorporatedOn)
		assert.Equal(t, 2019, result.IncorporatedOn.Year())
		assert.Equal(t, []string{"10710"}, result.SICCodes)
		assert.Equal(t, "4 Mill Lane", result.RegisteredOffice.Line1)
		assert.Equal(t, "Leeds", result.RegisteredOffice.City)
		assert.Equal(t, "LS1 4AB", result.RegisteredOffice.Postcode)
		require.Len(t, result.Officers, 1)
		assert.Equal(t, "DOE, Jane", result.Officers[0].Name)
		assert.Equal(t, "director", result.Officers[0].Role)
	})

	t.Run("officer fetch failure does not fail lookup", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/company/12345678", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"company_number": "12345678", "company_name": "ACME LTD", "company_status": "active", "type": "ltd"}`))
		})
		mux.HandleFunc("/company/12345678/officers", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		client := newTestClient(t, mux)
		result, err := client.GetByNumber(context.Background(), "12345678")
		require.NoError(t, err)
		assert.Equal(t, "ACME LTD", result.Name)
		assert.Empty(t, result.Officers)
	})

	t.Run("404 maps to ErrRegistryNotFound", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := client.GetByNumber(context.Background(), "00000000")
		require.ErrorIs(t, err, company.ErrRegistryNotFound)
	})

	t.Run("429 maps to ErrRegistryRateLimited", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))

		_, err := client.GetByNumber(context.Background(), "09876543")
		require.ErrorIs(t, err, company.ErrRegistryRateLimited)
	})

	t.Run("500 maps to ErrRegistryUnavailable", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := client.GetByNumber(context.Background(), "09876543")
		require.ErrorIs(t, err, company.ErrRegistryUnavailable)
	})

	t.Run("empty number returns not found without a request", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		}))

		_, err := client.GetByNumber(context.Background(), "")
		require.ErrorIs(t, err, company.ErrRegistryNotFound)
	})
}

func TestClient_SearchByName(t *testing.T) {
	t.Run("maps search results", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/companies", r.URL.Path)
			assert.Equal(t, "carter logistics", r.URL.Query().Get("q"))
			assert.Equal(t, "5", r.URL.Query().Get("items_per_page"))
			w.Write([]byte(`{
				"items": [
					{
						"title": "CARTER LOGISTICS LTD",
						"company_number": "11223344",
						"company_status": "active",
						"company_type": "ltd",
						"date_of_creation": "2017-06-01",
						"address": {"address_line_1": "1 Dock Road", "locality": "Hull", "postal_code": "HU1 2AB"}
					},
					{
						"title": "CARTER LOGISTICS (NORTH) LTD",
						"company_number": "22334455",
						"company_status": "dissolved",
						"company_type": "ltd"
					}
				]
			}`))
		}))

		results, err := client.SearchByName(context.Background(), "carter logistics", 5)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "CARTER LOGISTICS LTD", results[0].Name)
		assert.Equal(t, "11223344", results[0].RegistrationNumber)
		assert.Equal(t, "Hull", results[0].RegisteredOffice.City)
		require.NotNil(t, results[0].IncorporatedOn)
		assert.Equal(t, "dissolved", results[1].Status)
		assert.Nil(t, results[1].IncorporatedOn)
	})

	t.Run("empty name returns empty result without a request", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		}))

		results, err := client.SearchByName(context.Background(), "", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("zero limit uses default", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "10", r.URL.Query().Get("items_per_page"))
			w.Write([]byte(`{"items": []}`))
		}))

		results, err := client.SearchByName(context.Background(), "acme", 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("rate limit maps to sentinel", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))

		_, err := client.SearchByName(context.Background(), "acme", 10)
		require.ErrorIs(t, err, company.ErrRegistryRateLimited)
	})
}

func TestParseRegistryDate(t *testing.T) {
	assert.Nil(t, parseRegistryDate(""))
	assert.Nil(t, parseRegistryDate("not-a-date"))

	parsed := parseRegistryDate("2020-01-31")
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), *parsed)
}
