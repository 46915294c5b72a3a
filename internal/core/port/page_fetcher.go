package port

import "context"

// PageFetcherPort получает сырой HTML страницы объявления.
// Без ретраев: политика повторов принадлежит вызывающей стороне.
type PageFetcherPort interface {
	FetchHTML(ctx context.Context, pageURL string) (string, error)
}
