package ebay

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(ts *httptest.Server, policy PricePolicy) *Client {
	return NewClient(ClientOpts{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     ts.URL + "/identity/v1/oauth2/token",
		BrowseURL:    ts.URL + "/buy/browse/v1",
		Policy:       policy,
	})
}

func TestSearch(t *testing.T) {
	var gotAuth, gotFilter, gotQuery, gotLimit string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/identity/v1/oauth2/token":
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), "grant_type=client_credentials")
			assert.Contains(t, r.Header.Get("Authorization"), "Basic ")
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"access_token":"test-token","expires_in":7200,"token_type":"Application Access Token"}`)
		case "/buy/browse/v1/item_summary/search":
			gotAuth = r.Header.Get("Authorization")
			gotFilter = r.URL.Query().Get("filter")
			gotQuery = r.URL.Query().Get("q")
			gotLimit = r.URL.Query().Get("limit")
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{
				"total": 2,
				"itemSummaries": [
					{
						"title": "Game Boy Advance GBA",
						"price": {"value": "219.95", "currency": "USD"},
						"condition": "Excellent - Refurbished",
						"itemWebUrl": "https://www.ebay.com/itm/1",
						"image": {"imageUrl": "https://i.ebayimg.com/images/1.jpg"}
					},
					{
						"title": "GBA cartridge only",
						"price": {"value": "29.99", "currency": "USD"},
						"itemWebUrl": "https://www.ebay.com/itm/2"
					}
				]
			}`)
		}
	}))
	defer ts.Close()

	client := newTestClient(ts, RangeWindow{})
	items, err := client.Search(context.Background(), "Game Boy Advance", 300, "Used", 10)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "Game Boy Advance", gotQuery)
	assert.Equal(t, "price:[200..400],conditions:Used", gotFilter)
	assert.Equal(t, "10", gotLimit)

	require.Len(t, items, 2)
	assert.Equal(t, Item{
		Title:     "Game Boy Advance GBA",
		Price:     "219.95 USD",
		Condition: "Excellent - Refurbished",
		URL:       "https://www.ebay.com/itm/1",
		ImageURL:  "https://i.ebayimg.com/images/1.jpg",
	}, items[0])

	// Fields missing upstream come back as sentinels, not omissions.
	assert.Equal(t, NotAvailable, items[1].Condition)
	assert.Equal(t, NotAvailable, items[1].ImageURL)
}

func TestSearchNoItemSummaries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/identity/v1/oauth2/token" {
			io.WriteString(w, `{"access_token":"test-token"}`)
			return
		}
		io.WriteString(w, `{"warnings":[{"message":"no results"}]}`)
	}))
	defer ts.Close()

	client := newTestClient(ts, RangeWindow{})
	items, err := client.Search(context.Background(), "nothing", 50, "", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchTokenFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := newTestClient(ts, RangeWindow{})
	_, err := client.Search(context.Background(), "anything", 50, "", 10)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
}

func TestSearchConditionSentinelNotFiltered(t *testing.T) {
	var gotFilter string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/identity/v1/oauth2/token" {
			io.WriteString(w, `{"access_token":"test-token"}`)
			return
		}
		gotFilter = r.URL.Query().Get("filter")
		io.WriteString(w, `{"itemSummaries":[]}`)
	}))
	defer ts.Close()

	client := newTestClient(ts, RangeWindow{})
	_, err := client.Search(context.Background(), "desk", 120, "Not found", 10)
	require.NoError(t, err)
	assert.Equal(t, "price:[20..220]", gotFilter)
}
