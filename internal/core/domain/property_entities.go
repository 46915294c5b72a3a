package domain

import "time"

// HTMLOriginLabel - сентинел для original_url, когда запись получена из
// вставленного вручную HTML, а не по ссылке
const HTMLOriginLabel = "scraped-from-html"

// CandidateProperty - объект, извлеченный моделью из HTML, до обогащения
// и до обработки изображений. Все поля уже приведены к значениям по умолчанию
// на границе адаптера: пустая строка, 0, пустой срез.
type CandidateProperty struct {
	Title       string
	Description string

	Price        string
	Location     string
	City         string
	County       string
	Neighborhood string
	Bedrooms     int
	Bathrooms    int
	Area         string
	PropertyType string
	FloorNumber  int
	Features     []string

	TermsAndCondition string
	Mortgage          string
	WhatDo            string
	TenantType        string
	RentalTiming      string
	FurnishType       string

	// Идентификаторы и контакты, которые площадка публикует в объявлении
	ReferenceID            string
	PermitNumber           string
	ReraRegistrationNumber string
	AgentName              string
	AgentPhone             string
	AgentEmail             string
	BrokerName             string

	PageLink  string
	ImageURLs []string
}

// EnhancedContent - результат AI-улучшения заголовка и описания
type EnhancedContent struct {
	Title       string
	Description string
}

// PropertyRecord - финальная запись, которая хранится и отдается наружу.
// JSON-теги совпадают с форматом, в котором записи лежат в коллекции.
type PropertyRecord struct {
	ID          string `json:"id"`
	OriginalURL string `json:"original_url"`
	PageLink    string `json:"page_link"`
	ReferenceID string `json:"reference_id"`

	Title               string  `json:"title"`
	Description         string  `json:"description"`
	OriginalTitle       string  `json:"original_title"`
	OriginalDescription string  `json:"original_description"`
	EnhancedTitle       *string `json:"enhanced_title"`
	EnhancedDescription *string `json:"enhanced_description"`

	Price        string   `json:"price"`
	Location     string   `json:"location"`
	City         string   `json:"city"`
	County       string   `json:"county"`
	Neighborhood string   `json:"neighborhood"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Area         string   `json:"area"`
	PropertyType string   `json:"property_type"`
	FloorNumber  int      `json:"floor_number"`
	Features     []string `json:"features"`

	TermsAndCondition string `json:"terms_and_condition"`
	Mortgage          string `json:"mortgage"`
	WhatDo            string `json:"what_do"`
	TenantType        string `json:"tenant_type"`
	RentalTiming      string `json:"rental_timing"`
	FurnishType       string `json:"furnish_type"`

	PermitNumber           string `json:"permit_number"`
	ReraRegistrationNumber string `json:"rera_registration_number"`
	AgentName              string `json:"agent_name"`
	AgentPhone             string `json:"agent_phone"`
	AgentEmail             string `json:"agent_email"`
	BrokerName             string `json:"broker_name"`

	ImageURL  string   `json:"image_url"`
	ImageURLs []string `json:"image_urls"`

	ScrapedAt time.Time `json:"scraped_at"`
}
