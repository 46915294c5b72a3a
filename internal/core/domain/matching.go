package domain

// FindMatch ищет в существующей коллекции запись, описывающую то же
// объявление, что и incoming. Сигналы проверяются по убыванию надежности,
// берется первый, который заполнен с обеих сторон:
//
//  1. original_url (не сентинел вставленного HTML)
//  2. reference_id
//  3. page_link
//  4. пара (original_title, location)
//
// Возвращает индекс совпадения или -1.
func FindMatch(existing []PropertyRecord, incoming PropertyRecord) int {
	for i, rec := range existing {
		if sameListing(rec, incoming) {
			return i
		}
	}
	return -1
}

func sameListing(a, b PropertyRecord) bool {
	if a.OriginalURL != "" && a.OriginalURL != HTMLOriginLabel &&
		b.OriginalURL != "" && b.OriginalURL != HTMLOriginLabel {
		return a.OriginalURL == b.OriginalURL
	}
	if a.ReferenceID != "" && b.ReferenceID != "" {
		return a.ReferenceID == b.ReferenceID
	}
	if a.PageLink != "" && b.PageLink != "" {
		return a.PageLink == b.PageLink
	}
	if a.OriginalTitle != "" && b.OriginalTitle != "" {
		return a.OriginalTitle == b.OriginalTitle && a.Location == b.Location
	}
	return false
}
