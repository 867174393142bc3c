package ebay

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	TokenURL   = "https://api.ebay.com/identity/v1/oauth2/token"
	BrowseURL  = "https://api.ebay.com/buy/browse/v1"
	oauthScope = "https://api.ebay.com/oauth/api_scope"
)

// AuthError indicates the client credentials exchange failed. It is fatal
// for the request: without a token no eBay search can run.
type AuthError struct {
	StatusCode int
	Cause      error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ebay token exchange failed: %v", e.Cause)
	}
	return fmt.Sprintf("ebay token exchange failed: status %d", e.StatusCode)
}

func (e *AuthError) Unwrap() error { return e.Cause }

type ClientOpts struct {
	ClientID     string
	ClientSecret string
	// TokenURL and BrowseURL override the production endpoints, for tests.
	TokenURL  string
	BrowseURL string
	Policy    PricePolicy
}

// Client talks to the eBay Browse API using application-level OAuth.
type Client struct {
	httpClient   *resty.Client
	clientID     string
	clientSecret string
	tokenURL     string
	browseURL    string
	policy       PricePolicy
}

func NewClient(opts ClientOpts) *Client {
	c := Client{
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		tokenURL:     TokenURL,
		browseURL:    BrowseURL,
		policy:       opts.Policy,
	}
	if opts.TokenURL != "" {
		c.tokenURL = opts.TokenURL
	}
	if opts.BrowseURL != "" {
		c.browseURL = opts.BrowseURL
	}
	if c.policy == nil {
		c.policy = RangeWindow{}
	}
	c.httpClient = resty.New().
		SetHeader("Accept", "application/json")

	return &c
}

// getAccessToken performs the client credentials exchange and returns a
// bearer token. Tokens are not cached; the pipeline is one-shot per
// request.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))

	result := &tokenResponse{}
	res, err := c.httpClient.NewRequest().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetHeader("Authorization", "Basic "+credentials).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
			"scope":      oauthScope,
		}).
		SetResult(result).
		Post(c.tokenURL)
	if err != nil {
		return "", &AuthError{Cause: err}
	}
	if res.IsError() {
		return "", &AuthError{StatusCode: res.StatusCode()}
	}
	if result.AccessToken == "" {
		return "", &AuthError{Cause: fmt.Errorf("token response had no access_token")}
	}

	return result.AccessToken, nil
}

// Search queries the Browse API for items similar to the extracted listing.
// An upstream response without itemSummaries yields an empty slice, not an
// error; only the token exchange is allowed to abort the pipeline.
func (c *Client) Search(ctx context.Context, title string, price float64, condition string, limit int) ([]Item, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	min, max := c.policy.Window(price)
	filter := fmt.Sprintf("price:[%s..%s]", formatBound(min), formatBound(max))
	if condition != "" && condition != "Not found" {
		filter += ",conditions:" + condition
	}

	log.Debug().
		Str("title", title).
		Str("filter", filter).
		Str("policy", c.policy.Name()).
		Msg("searching ebay")

	result := &searchResponse{}
	res, err := c.httpClient.NewRequest().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetQueryParams(map[string]string{
			"q":      title,
			"filter": filter,
			"limit":  strconv.Itoa(limit),
		}).
		SetResult(result).
		Get(c.browseURL + "/item_summary/search")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("ebay search failed: %s (status: %d)", res.Request.URL, res.StatusCode())
	}

	items := make([]Item, 0, len(result.ItemSummaries))
	for _, summary := range result.ItemSummaries {
		item := Item{
			Title:     summary.Title,
			Condition: summary.Condition,
			URL:       summary.ItemWebURL,
		}
		if summary.Price != nil {
			item.Price = summary.Price.Value + " " + summary.Price.Currency
		}
		if summary.Image != nil {
			item.ImageURL = summary.Image.ImageURL
		}
		if item.Condition == "" {
			item.Condition = NotAvailable
		}
		if item.ImageURL == "" {
			item.ImageURL = NotAvailable
		}
		items = append(items, item)
	}

	return items, nil
}
