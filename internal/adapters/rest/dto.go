package rest

// ScrapeURLRequest - тело POST /api/v1/scrape/url
type ScrapeURLRequest struct {
	URL string `json:"url"`
}

// ScrapeHTMLRequest - тело POST /api/v1/scrape/html.
// Origin опционален: если страница была скопирована вручную, источника нет.
type ScrapeHTMLRequest struct {
	HTML   string `json:"html"`
	Origin string `json:"origin,omitempty"`
}

// ScrapeBulkRequest - тело POST /api/v1/scrape/bulk.
// URLs - один текстовый блок, адреса разделены переводами строк.
type ScrapeBulkRequest struct {
	URLs string `json:"urls"`
}
