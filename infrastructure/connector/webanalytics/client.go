package webanalytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/infrastructure/connector"
	wadomain "github.com/prem5599/bizinsights-sub001/infrastructure/connector/webanalytics/domain"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

type Client interface {
	QueryDailyMetrics(ctx context.Context, creds *domain.Credentials, start, end time.Time) ([]wadomain.DailyRow, error)
	RefreshToken(ctx context.Context, creds *domain.Credentials) error
}

type AnalyticsClient struct {
	cfg        *config.Config
	httpClient *http.Client
	limiter    *connector.RateLimiter
	retry      connector.RetryPolicy
}

func NewClient(cfg *config.Config) Client {
	return &AnalyticsClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Sync.RequestTimeoutSeconds) * time.Second,
		},
		limiter: connector.NewRateLimiter(time.Duration(cfg.Sync.PageDelayMillis) * time.Millisecond),
		retry: connector.RetryPolicy{
			MaxAttempts:     cfg.Sync.RetryMaxAttempts,
			InitialInterval: time.Duration(cfg.Sync.RetryInitialDelayMillis) * time.Millisecond,
			Multiplier:      2.0,
			MaxInterval:     30 * time.Second,
		},
	}
}

// pageEnvelope é o envelope de paginação por offset da API de analytics
type pageEnvelope struct {
	Data  []wadomain.DailyRow `json:"data"`
	Total int                 `json:"total"`
}

// QueryDailyMetrics percorre as páginas da consulta de métricas diárias
// avançando o offset até esgotar o total informado pela API
func (c *AnalyticsClient) QueryDailyMetrics(ctx context.Context, creds *domain.Credentials, start, end time.Time) ([]wadomain.DailyRow, error) {
	pageSize := c.cfg.Sync.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	rows := make([]wadomain.DailyRow, 0)
	offset := 0

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		params := url.Values{}
		params.Set("start_date", start.Format(time.DateOnly))
		params.Set("end_date", end.Format(time.DateOnly))
		params.Set("limit", strconv.Itoa(pageSize))
		params.Set("offset", strconv.Itoa(offset))

		envelope, err := c.fetchPage(ctx, creds, params)
		if err != nil {
			return nil, err
		}

		rows = append(rows, envelope.Data...)

		if maxRecords := c.cfg.Sync.MaxRecordsPerSync; maxRecords > 0 && len(rows) >= maxRecords {
			logrus.WithField("records", len(rows)).
				Warn("Teto de registros por sincronização atingido, interrompendo paginação")
			break
		}

		offset += len(envelope.Data)
		if len(envelope.Data) < pageSize || (envelope.Total > 0 && offset >= envelope.Total) {
			break
		}
	}

	return rows, nil
}

func (c *AnalyticsClient) fetchPage(ctx context.Context, creds *domain.Credentials, params url.Values) (*pageEnvelope, error) {
	var envelope *pageEnvelope
	refreshed := false

	operation := func() error {
		body, err := c.doRequest(ctx, creds, params)
		if err == connector.ErrUnauthorized && !refreshed && creds.RefreshToken != "" {
			// Credencial rejeitada, tentar renovar o token uma única vez
			refreshed = true
			if refreshErr := c.RefreshToken(ctx, creds); refreshErr != nil {
				return fmt.Errorf("erro ao renovar o token: %w", refreshErr)
			}
			body, err = c.doRequest(ctx, creds, params)
		}
		if err != nil {
			return err
		}

		decoded := &pageEnvelope{}
		if err := json.Unmarshal(body, decoded); err != nil {
			return fmt.Errorf("erro ao decodificar JSON: %w", err)
		}

		envelope = decoded
		return nil
	}

	if err := c.retry.DoWithRetry(ctx, operation); err != nil {
		return nil, err
	}

	return envelope, nil
}

func (c *AnalyticsClient) doRequest(ctx context.Context, creds *domain.Credentials, params url.Values) ([]byte, error) {
	requestURL := c.cfg.WebAnalytics.BaseURL + "/metrics/daily?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao fazer a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o corpo da resposta: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, connector.ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		c.applyCooldown(resp)
		fallthrough
	default:
		return nil, &connector.RequestError{
			Platform:   string(domain.PlatformWebAnalytics),
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
		}
	}
}

// RefreshToken troca o refresh token por uma nova credencial de acesso
func (c *AnalyticsClient) RefreshToken(ctx context.Context, creds *domain.Credentials) error {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", creds.RefreshToken)
	form.Set("client_id", c.cfg.WebAnalytics.ClientID)
	form.Set("client_secret", c.cfg.WebAnalytics.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WebAnalytics.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao fazer a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler o corpo da resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &connector.RequestError{
			Platform:   string(domain.PlatformWebAnalytics),
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
		}
	}

	var token struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	creds.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		creds.RefreshToken = token.RefreshToken
	}
	if token.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
		creds.ExpiresAt = &expiresAt
	}

	logrus.WithField("platform", domain.PlatformWebAnalytics).Info("Token de acesso renovado com sucesso")
	return nil
}

func (c *AnalyticsClient) applyCooldown(resp *http.Response) {
	cooldown := 2 * time.Second
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
			cooldown = time.Duration(seconds) * time.Second
		}
	}
	c.limiter.Cooldown(cooldown)
}

func truncateBody(body []byte) string {
	const maxLen = 512
	if len(body) > maxLen {
		return string(body[:maxLen])
	}
	return string(body)
}
