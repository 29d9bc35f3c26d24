package stripe

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
	stripedomain "github.com/prem5599/bizinsights-sub001/infrastructure/connector/stripe/domain"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

type Client interface {
	ListCharges(ctx context.Context, creds *domain.Credentials, since time.Time) ([]stripedomain.Charge, error)
	ListRefunds(ctx context.Context, creds *domain.Credentials, since time.Time) ([]stripedomain.Refund, error)
	ListSubscriptions(ctx context.Context, creds *domain.Credentials) ([]stripedomain.Subscription, error)
	ListCustomers(ctx context.Context, creds *domain.Credentials, since time.Time) ([]stripedomain.Customer, error)
	RefreshToken(ctx context.Context, creds *domain.Credentials) error
}

type StripeClient struct {
	cfg        *config.Config
	httpClient *http.Client
	limiter    *connector.RateLimiter
	retry      connector.RetryPolicy
}

func NewClient(cfg *config.Config) Client {
	return &StripeClient{
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

// listEnvelope é o envelope de paginação por cursor das listagens da API
type listEnvelope struct {
	Data    []json.RawMessage `json:"data"`
	HasMore bool              `json:"has_more"`
}

func (c *StripeClient) ListCharges(ctx context.Context, creds *domain.Credentials, since time.Time) ([]stripedomain.Charge, error) {
	params := url.Values{}
	params.Set("created[gte]", strconv.FormatInt(since.Unix(), 10))

	raw, err := c.listResource(ctx, creds, "/charges", params)
	if err != nil {
		return nil, err
	}

	return decodeList[stripedomain.Charge]("/charges", raw), nil
}

func (c *StripeClient) ListRefunds(ctx context.Context, creds *domain.Credentials, since time.Time) ([]stripedomain.Refund, error) {
	params := url.Values{}
	params.Set("created[gte]", strconv.FormatInt(since.Unix(), 10))

	raw, err := c.listResource(ctx, creds, "/refunds", params)
	if err != nil {
		return nil, err
	}

	return decodeList[stripedomain.Refund]("/refunds", raw), nil
}

func (c *StripeClient) ListSubscriptions(ctx context.Context, creds *domain.Credentials) ([]stripedomain.Subscription, error) {
	params := url.Values{}
	params.Set("status", stripedomain.SubscriptionStatusActive)

	raw, err := c.listResource(ctx, creds, "/subscriptions", params)
	if err != nil {
		return nil, err
	}

	return decodeList[stripedomain.Subscription]("/subscriptions", raw), nil
}

func (c *StripeClient) ListCustomers(ctx context.Context, creds *domain.Credentials, since time.Time) ([]stripedomain.Customer, error) {
	params := url.Values{}
	params.Set("created[gte]", strconv.FormatInt(since.Unix(), 10))

	raw, err := c.listResource(ctx, creds, "/customers", params)
	if err != nil {
		return nil, err
	}

	return decodeList[stripedomain.Customer]("/customers", raw), nil
}

// listResource percorre todas as páginas de um recurso usando o cursor
// starting_after, até has_more ser falso ou o teto de registros ser atingido
func (c *StripeClient) listResource(ctx context.Context, creds *domain.Credentials, path string, params url.Values) ([]json.RawMessage, error) {
	pageSize := c.cfg.Sync.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	params.Set("limit", strconv.Itoa(pageSize))

	results := make([]json.RawMessage, 0)
	startingAfter := ""

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		pageParams := url.Values{}
		for key, values := range params {
			pageParams[key] = values
		}
		if startingAfter != "" {
			pageParams.Set("starting_after", startingAfter)
		}

		envelope, err := c.fetchPage(ctx, creds, path, pageParams)
		if err != nil {
			return nil, err
		}

		results = append(results, envelope.Data...)

		if maxRecords := c.cfg.Sync.MaxRecordsPerSync; maxRecords > 0 && len(results) >= maxRecords {
			logrus.WithFields(logrus.Fields{
				"path":    path,
				"records": len(results),
			}).Warn("Teto de registros por sincronização atingido, interrompendo paginação")
			break
		}

		if !envelope.HasMore || len(envelope.Data) == 0 {
			break
		}

		var last struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(envelope.Data[len(envelope.Data)-1], &last); err != nil {
			return nil, fmt.Errorf("erro ao extrair cursor da última página: %w", err)
		}
		startingAfter = last.ID
	}

	return results, nil
}

func (c *StripeClient) fetchPage(ctx context.Context, creds *domain.Credentials, path string, params url.Values) (*listEnvelope, error) {
	var envelope *listEnvelope
	refreshed := false

	operation := func() error {
		body, err := c.doRequest(ctx, creds, path, params)
		if err == connector.ErrUnauthorized && !refreshed && creds.RefreshToken != "" {
			// Credencial rejeitada, tentar renovar o token uma única vez
			refreshed = true
			if refreshErr := c.RefreshToken(ctx, creds); refreshErr != nil {
				return fmt.Errorf("erro ao renovar o token: %w", refreshErr)
			}
			body, err = c.doRequest(ctx, creds, path, params)
		}
		if err != nil {
			return err
		}

		decoded := &listEnvelope{}
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

func (c *StripeClient) doRequest(ctx context.Context, creds *domain.Credentials, path string, params url.Values) ([]byte, error) {
	requestURL := c.cfg.Stripe.BaseURL + path + "?" + params.Encode()

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
			Platform:   string(domain.PlatformStripe),
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
		}
	}
}

// RefreshToken troca o refresh token por uma nova credencial de acesso
func (c *StripeClient) RefreshToken(ctx context.Context, creds *domain.Credentials) error {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", creds.RefreshToken)
	form.Set("client_id", c.cfg.Stripe.ClientID)
	form.Set("client_secret", c.cfg.Stripe.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Stripe.TokenURL, strings.NewReader(form.Encode()))
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
			Platform:   string(domain.PlatformStripe),
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

	logrus.WithField("platform", domain.PlatformStripe).Info("Token de acesso renovado com sucesso")
	return nil
}

func (c *StripeClient) applyCooldown(resp *http.Response) {
	cooldown := 2 * time.Second
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
			cooldown = time.Duration(seconds) * time.Second
		}
	}
	c.limiter.Cooldown(cooldown)
}

// decodeList descarta registros com formato inesperado em vez de abortar a
// página inteira, registrando cada descarte no log
func decodeList[T any](path string, raw []json.RawMessage) []T {
	items := make([]T, 0, len(raw))
	for _, message := range raw {
		var item T
		if err := json.Unmarshal(message, &item); err != nil {
			logrus.WithError(err).WithField("path", path).
				Warn("Registro com formato inesperado descartado")
			continue
		}
		items = append(items, item)
	}

	return items
}

func truncateBody(body []byte) string {
	const maxLen = 512
	if len(body) > maxLen {
		return string(body[:maxLen])
	}
	return string(body)
}
