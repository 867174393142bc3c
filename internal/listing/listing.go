package listing

// Platform identifies the marketplace a listing came from.
type Platform string

const (
	PlatformEbay       Platform = "ebay"
	PlatformCraigslist Platform = "craigslist"
)

// Sentinel values substituted when a field cannot be extracted from the
// upstream response.
const (
	DefaultTitle = "Untitled"
	DefaultURL   = "#"
	DefaultImage = "https://via.placeholder.com/150"
	NotAvailable = "N/A"
)

// Normalized is the canonical listing shape consumed by the presentation
// layer, regardless of which source produced it.
type Normalized struct {
	Image    string   `json:"image"`
	Price    string   `json:"price"`
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Platform Platform `json:"platform"`
}

// Bucket holds aggregate statistics and the listing set for one platform,
// or for the combined view.
type Bucket struct {
	Count    int          `json:"count"`
	AvgPrice string       `json:"avgPrice"`
	Listings []Normalized `json:"listings"`
}

// Buckets is the full normalization result. All contains eBay listings
// followed by Craigslist listings, in that order.
type Buckets struct {
	All        Bucket `json:"all"`
	Ebay       Bucket `json:"ebay"`
	Craigslist Bucket `json:"craigslist"`
}
