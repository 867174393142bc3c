package ebay

// NotAvailable is substituted for fields the Browse API response omits.
const NotAvailable = "N/A"

// Item is one raw eBay search result in the source-specific wire shape
// the extension consumes. Created from one itemSummary entry and
// discarded after normalization.
type Item struct {
	Title     string `json:"ebay_title"`
	Price     string `json:"ebay_price"`
	Condition string `json:"ebay_condition"`
	URL       string `json:"ebay_url"`
	ImageURL  string `json:"ebay_imageUrl"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type searchResponse struct {
	ItemSummaries []itemSummary `json:"itemSummaries"`
	Total         int           `json:"total"`
}

type itemSummary struct {
	Title      string      `json:"title"`
	Price      *itemPrice  `json:"price,omitempty"`
	Condition  string      `json:"condition"`
	ItemWebURL string      `json:"itemWebUrl"`
	Image      *itemImage  `json:"image,omitempty"`
	Seller     *itemSeller `json:"seller,omitempty"`
}

type itemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type itemImage struct {
	ImageURL string `json:"imageUrl"`
}

type itemSeller struct {
	Username string `json:"username"`
}
