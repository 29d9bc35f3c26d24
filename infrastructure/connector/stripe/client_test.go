package stripe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prem5599/bizinsights-sub001/infrastructure/connector"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

func clientConfig(baseURL string) *config.Config {
	return &config.Config{
		Stripe: config.Stripe{
			BaseURL:  baseURL,
			TokenURL: baseURL + "/oauth/token",
		},
		Sync: config.Sync{
			PageSize:                2,
			RequestTimeoutSeconds:   5,
			RetryMaxAttempts:        2,
			RetryInitialDelayMillis: 1,
		},
	}
}

func TestClientListChargesPagination(t *testing.T) {
	var cursors []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/charges", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.URL.Query().Get("created[gte]"))

		cursor := r.URL.Query().Get("starting_after")
		cursors = append(cursors, cursor)

		w.Header().Set("Content-Type", "application/json")
		if cursor == "" {
			fmt.Fprint(w, `{"data":[{"id":"ch_1","amount":1000},{"id":"ch_2","amount":2000}],"has_more":true}`)
			return
		}
		fmt.Fprint(w, `{"data":[{"id":"ch_3","amount":3000}],"has_more":false}`)
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL))
	creds := &domain.Credentials{AccessToken: "sk_test"}

	charges, err := client.ListCharges(context.Background(), creds, time.Now().AddDate(0, 0, -30))

	assert.NoError(t, err)
	assert.Len(t, charges, 3)
	assert.Equal(t, "ch_3", charges[2].ID)
	// O cursor da segunda página é o ID do último item da primeira
	assert.Equal(t, []string{"", "ch_2"}, cursors)
}

func TestClientListChargesRespectsMaxRecords(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"data":[{"id":"ch_1"},{"id":"ch_2"}],"has_more":true}`)
	}))
	defer server.Close()

	cfg := clientConfig(server.URL)
	cfg.Sync.MaxRecordsPerSync = 2
	client := NewClient(cfg)

	charges, err := client.ListCharges(context.Background(), &domain.Credentials{AccessToken: "sk_test"}, time.Now())

	assert.NoError(t, err)
	assert.Len(t, charges, 2)
	assert.Equal(t, 1, requests)
}

func TestClientListChargesSkipsMalformedRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"ch_1","amount":1000},{"id":"ch_2","amount":"quebrado"}],"has_more":false}`)
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL))

	charges, err := client.ListCharges(context.Background(), &domain.Credentials{AccessToken: "sk_test"}, time.Now())

	// O registro malformado é descartado sem derrubar o restante da página
	assert.NoError(t, err)
	assert.Len(t, charges, 1)
	assert.Equal(t, "ch_1", charges[0].ID)
}

func TestClientRefreshesTokenOnUnauthorized(t *testing.T) {
	var refreshCalls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			refreshCalls++
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
			assert.Equal(t, "rt_old", r.PostForm.Get("refresh_token"))

			fmt.Fprint(w, `{"access_token":"sk_new","refresh_token":"rt_new","expires_in":3600}`)
			return
		}

		if r.Header.Get("Authorization") != "Bearer sk_new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"data":[{"id":"cus_1","email":"a@b.com"}],"has_more":false}`)
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL))
	creds := &domain.Credentials{AccessToken: "sk_expired", RefreshToken: "rt_old"}

	customers, err := client.ListCustomers(context.Background(), creds, time.Now())

	assert.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, "sk_new", creds.AccessToken)
	assert.Equal(t, "rt_new", creds.RefreshToken)
	assert.NotNil(t, creds.ExpiresAt)
}

func TestClientRetriesOnTooManyRequests(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"data":[{"id":"re_1","amount":500}],"has_more":false}`)
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL))

	refunds, err := client.ListRefunds(context.Background(), &domain.Credentials{AccessToken: "sk_test"}, time.Now())

	assert.NoError(t, err)
	assert.Len(t, refunds, 1)
	assert.Equal(t, 2, requests)
}

func TestClientSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := clientConfig(server.URL)
	cfg.Sync.RetryMaxAttempts = 1
	client := NewClient(cfg)

	_, err := client.ListSubscriptions(context.Background(), &domain.Credentials{AccessToken: "sk_test"})

	var requestErr *connector.RequestError
	assert.ErrorAs(t, err, &requestErr)
	assert.Equal(t, http.StatusInternalServerError, requestErr.StatusCode)
}
