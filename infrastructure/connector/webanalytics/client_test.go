package webanalytics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

func clientConfig(baseURL string) *config.Config {
	return &config.Config{
		WebAnalytics: config.WebAnalytics{
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

func TestClientQueryDailyMetricsPaginatesByOffset(t *testing.T) {
	var offsets []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/metrics/daily", r.URL.Path)
		assert.Equal(t, "Bearer ga_test", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2024-03-31", r.URL.Query().Get("end_date"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)

		w.Header().Set("Content-Type", "application/json")
		if offset == "0" {
			fmt.Fprint(w, `{"data":[{"date":"2024-03-01","source":"google","sessions":120},{"date":"2024-03-01","source":"direct","sessions":80}],"total":3}`)
			return
		}
		fmt.Fprint(w, `{"data":[{"date":"2024-03-02","source":"google","sessions":95}],"total":3}`)
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL))
	creds := &domain.Credentials{AccessToken: "ga_test"}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	rows, err := client.QueryDailyMetrics(context.Background(), creds, start, end)

	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, int64(95), rows[2].Sessions)
	// O offset da segunda página avança pelo tamanho da primeira
	assert.Equal(t, []string{"0", "2"}, offsets)
}

func TestClientQueryDailyMetricsStopsOnShortPage(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"data":[{"date":"2024-03-01","source":"google","sessions":10}],"total":0}`)
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL))

	rows, err := client.QueryDailyMetrics(context.Background(), &domain.Credentials{AccessToken: "ga_test"}, time.Now().AddDate(0, 0, -7), time.Now())

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, requests)
}

func TestClientRefreshTokenUpdatesCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))

		fmt.Fprint(w, `{"access_token":"ga_new","expires_in":1800}`)
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL))
	creds := &domain.Credentials{AccessToken: "ga_old", RefreshToken: "rt_1"}

	err := client.RefreshToken(context.Background(), creds)

	assert.NoError(t, err)
	assert.Equal(t, "ga_new", creds.AccessToken)
	// Sem refresh token novo na resposta, o antigo permanece
	assert.Equal(t, "rt_1", creds.RefreshToken)
	assert.NotNil(t, creds.ExpiresAt)
}
