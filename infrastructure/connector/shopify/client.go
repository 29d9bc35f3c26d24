package shopify

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
	shopifydomain "github.com/prem5599/bizinsights-sub001/infrastructure/connector/shopify/domain"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

type Client interface {
	ListOrders(ctx context.Context, creds *domain.Credentials, shopDomain string, since time.Time) ([]shopifydomain.Order, error)
	ListCustomers(ctx context.Context, creds *domain.Credentials, shopDomain string, since time.Time) ([]shopifydomain.Customer, error)
}

type ShopifyClient struct {
	cfg        *config.Config
	httpClient *http.Client
	limiter    *connector.RateLimiter
	retry      connector.RetryPolicy
}

func NewClient(cfg *config.Config) Client {
	return &ShopifyClient{
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

func (c *ShopifyClient) ListOrders(ctx context.Context, creds *domain.Credentials, shopDomain string, since time.Time) ([]shopifydomain.Order, error) {
	params := url.Values{}
	params.Set("status", "any")
	params.Set("created_at_min", since.Format(time.RFC3339))

	orders := make([]shopifydomain.Order, 0)
	err := c.listResource(ctx, creds, shopDomain, "orders", params, func(body []byte) (int, error) {
		var page struct {
			Orders []shopifydomain.Order `json:"orders"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return 0, err
		}
		orders = append(orders, page.Orders...)
		return len(page.Orders), nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (c *ShopifyClient) ListCustomers(ctx context.Context, creds *domain.Credentials, shopDomain string, since time.Time) ([]shopifydomain.Customer, error) {
	params := url.Values{}
	params.Set("created_at_min", since.Format(time.RFC3339))

	customers := make([]shopifydomain.Customer, 0)
	err := c.listResource(ctx, creds, shopDomain, "customers", params, func(body []byte) (int, error) {
		var page struct {
			Customers []shopifydomain.Customer `json:"customers"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return 0, err
		}
		customers = append(customers, page.Customers...)
		return len(page.Customers), nil
	})
	if err != nil {
		return nil, err
	}

	return customers, nil
}

// listResource percorre as páginas de um recurso seguindo o cursor page_info
// devolvido no cabeçalho Link, até não haver rel="next" ou atingir o teto
func (c *ShopifyClient) listResource(ctx context.Context, creds *domain.Credentials, shopDomain, resource string, params url.Values, consume func(body []byte) (int, error)) error {
	pageSize := c.cfg.Sync.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	params.Set("limit", strconv.Itoa(pageSize))

	pageInfo := ""
	total := 0

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		pageParams := url.Values{}
		if pageInfo == "" {
			for key, values := range params {
				pageParams[key] = values
			}
		} else {
			// Com cursor, a API só aceita limit e page_info
			pageParams.Set("limit", params.Get("limit"))
			pageParams.Set("page_info", pageInfo)
		}

		body, nextPageInfo, err := c.fetchPage(ctx, creds, shopDomain, resource, pageParams)
		if err != nil {
			return err
		}

		count, err := consume(body)
		if err != nil {
			return fmt.Errorf("erro ao decodificar JSON: %w", err)
		}
		total += count

		if maxRecords := c.cfg.Sync.MaxRecordsPerSync; maxRecords > 0 && total >= maxRecords {
			logrus.WithFields(logrus.Fields{
				"resource": resource,
				"records":  total,
			}).Warn("Teto de registros por sincronização atingido, interrompendo paginação")
			return nil
		}

		if nextPageInfo == "" || count == 0 {
			return nil
		}
		pageInfo = nextPageInfo
	}
}

func (c *ShopifyClient) fetchPage(ctx context.Context, creds *domain.Credentials, shopDomain, resource string, params url.Values) ([]byte, string, error) {
	var body []byte
	var nextPageInfo string

	operation := func() error {
		requestURL := fmt.Sprintf(
			"%s/%s/%s.json?%s",
			fmt.Sprintf(c.cfg.Shopify.BaseURLTemplate, shopDomain),
			c.cfg.Shopify.APIVersion,
			resource,
			params.Encode(),
		)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return fmt.Errorf("erro ao criar a requisição: %w", err)
		}
		req.Header.Set("X-Shopify-Access-Token", creds.AccessToken)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("erro ao fazer a requisição: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("erro ao ler o corpo da resposta: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body = respBody
			nextPageInfo = parseNextPageInfo(resp.Header.Get("Link"))
			return nil
		case resp.StatusCode == http.StatusUnauthorized:
			return connector.ErrUnauthorized
		case resp.StatusCode == http.StatusTooManyRequests:
			c.applyCooldown(resp)
			fallthrough
		default:
			return &connector.RequestError{
				Platform:   string(domain.PlatformShopify),
				StatusCode: resp.StatusCode,
				Body:       truncateBody(respBody),
			}
		}
	}

	if err := c.retry.DoWithRetry(ctx, operation); err != nil {
		return nil, "", err
	}

	return body, nextPageInfo, nil
}

func (c *ShopifyClient) applyCooldown(resp *http.Response) {
	cooldown := 2 * time.Second
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.ParseFloat(header, 64); err == nil && seconds > 0 {
			cooldown = time.Duration(seconds * float64(time.Second))
		}
	}
	c.limiter.Cooldown(cooldown)
}

// parseNextPageInfo extrai o cursor page_info do link rel="next" do
// cabeçalho Link da resposta
func parseNextPageInfo(header string) string {
	if header == "" {
		return ""
	}

	for _, part := range strings.Split(header, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}

		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start < 0 || end < 0 || end <= start {
			continue
		}

		linkURL, err := url.Parse(strings.TrimSpace(part[start+1 : end]))
		if err != nil {
			continue
		}

		return linkURL.Query().Get("page_info")
	}

	return ""
}

func truncateBody(body []byte) string {
	const maxLen = 512
	if len(body) > maxLen {
		return string(body[:maxLen])
	}
	return string(body)
}
