//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	pacttest "github.com/emberline/storefront-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type cartPayload struct {
	ID            string        `json:"id"`
	CheckoutURL   string        `json:"checkoutUrl"`
	TotalQuantity int           `json:"totalQuantity"`
	Lines         []linePayload `json:"lines"`
}

type linePayload struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestStorefrontWebContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	cartBodyMatcher := matchers.Map{
		"id":            matchers.Like(pacttest.ExistingCartID),
		"checkoutUrl":   matchers.Like("https://checkout.example/" + pacttest.ExistingCartID),
		"totalQuantity": matchers.Like(2),
		"lines": matchers.ArrayMinLike(matchers.Map{
			"id":       matchers.Like("gid://pact/CartLine/1"),
			"quantity": matchers.Like(2),
		}, 1),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateCartBaseline).
		UponReceiving("a request to create a cart with one line").
		WithRequest("POST", "/cart", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"lines": matchers.ArrayMinLike(matchers.Map{
					"merchandiseId": matchers.Like(pacttest.SeededVariantID),
					"quantity":      matchers.Like(2),
				}, 1),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"cart": cartBodyMatcher})
		})

	pact.AddInteraction().
		Given(pacttest.StateCartExists).
		UponReceiving("a request to fetch an existing cart").
		WithRequest("GET", "/cart", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("cartId", matchers.S(pacttest.ExistingCartID))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"cart": cartBodyMatcher})
		})

	pact.AddInteraction().
		Given(pacttest.StateCartMissing).
		UponReceiving("a request for a missing cart").
		WithRequest("GET", "/cart", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("cartId", matchers.S(pacttest.MissingCartID))
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request for the product listing").
		WithRequest("GET", "/products").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"products": matchers.ArrayMinLike(matchers.Map{
					"id":     matchers.Like("gid://pact/Product/1"),
					"handle": matchers.Like(pacttest.ProductHandle),
					"title":  matchers.Like("Ember Candle"),
				}, 1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request for an unknown product handle").
		WithRequest("GET", "/products", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("handle", matchers.S(pacttest.MissingHandle))
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newStorefrontClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.CreateCart(ctx, []map[string]any{pacttest.ExampleLinePayload()})
		if err != nil {
			return fmt.Errorf("create cart: %w", err)
		}
		if created == nil || created.ID == "" {
			return fmt.Errorf("expected created cart ID to be set")
		}

		fetched, err := client.GetCart(ctx, pacttest.ExistingCartID)
		if err != nil {
			return fmt.Errorf("get cart: %w", err)
		}
		if fetched == nil || fetched.TotalQuantity == 0 {
			return fmt.Errorf("expected seeded cart to hold lines, got %+v", fetched)
		}

		if _, err := client.GetCart(ctx, pacttest.MissingCartID); err == nil {
			return fmt.Errorf("expected 404 for cart %s", pacttest.MissingCartID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		products, err := client.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		if len(products) == 0 {
			return fmt.Errorf("expected seeded products")
		}

		if _, err := client.GetProduct(ctx, pacttest.MissingHandle); err == nil {
			return fmt.Errorf("expected 404 for handle %s", pacttest.MissingHandle)
		}

		return nil
	})
	require.NoError(t, err)
}

type storefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

func newStorefrontClient(config pactconsumer.MockServerConfig) *storefrontClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &storefrontClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *storefrontClient) CreateCart(ctx context.Context, lines []map[string]any) (*cartPayload, error) {
	body, err := json.Marshal(map[string]any{"lines": lines})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cart", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doCart(req)
}

func (c *storefrontClient) GetCart(ctx context.Context, cartID string) (*cartPayload, error) {
	query := url.Values{"cartId": []string{cartID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cart?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.doCart(req)
}

func (c *storefrontClient) ListProducts(ctx context.Context) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}
	var envelope struct {
		Products []map[string]any `json:"products"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}

func (c *storefrontClient) GetProduct(ctx context.Context, handle string) (map[string]any, error) {
	query := url.Values{"handle": []string{handle}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}
	var envelope struct {
		Product map[string]any `json:"product"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return envelope.Product, nil
}

func (c *storefrontClient) doCart(req *http.Request) (*cartPayload, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}
	var envelope struct {
		Cart cartPayload `json:"cart"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return &envelope.Cart, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
