package claudeai

import (
	"context"
	"encoding/json"

	"property-scraper-service/internal/contracts"
	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"
)

const extractionPrompt = `You are an expert at extracting structured data from web pages. Analyze the following HTML content from a real estate website and extract the details for all properties listed on the page.

Respond with a single JSON object of the form {"properties": [...]} where each element has the fields: title, description, price, location, city, county, neighborhood, bedrooms, bathrooms, area, property_type, floor_number, features, terms_and_condition, mortgage, what_do, tenant_type, rental_timing, furnish_type, reference_id, permit_number, rera_registration_number, agent_name, agent_phone, agent_email, broker_name, page_link, image_urls.

Rules:
- For all string fields, if you cannot find the information, return an empty string "".
- For all number fields, if you cannot find the information, return 0.
- For the 'features' and 'image_urls' arrays, if no information is found, return an empty array [].
- Collect every image URL that belongs to a listing into 'image_urls', exactly as it appears in the HTML.
- If no properties are found, return an empty array for the 'properties' field.
- Respond with JSON only, no commentary.

HTML Content:
`

// extractedPropertiesPayload - формат ответа модели, проверяется по
// jsonschema-контракту до маппинга в домен
type extractedPropertiesPayload struct {
	Properties []extractedProperty `json:"properties"`
}

type extractedProperty struct {
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	Price                  string   `json:"price"`
	Location               string   `json:"location"`
	City                   string   `json:"city"`
	County                 string   `json:"county"`
	Neighborhood           string   `json:"neighborhood"`
	Bedrooms               int      `json:"bedrooms"`
	Bathrooms              int      `json:"bathrooms"`
	Area                   string   `json:"area"`
	PropertyType           string   `json:"property_type"`
	FloorNumber            int      `json:"floor_number"`
	Features               []string `json:"features"`
	TermsAndCondition      string   `json:"terms_and_condition"`
	Mortgage               string   `json:"mortgage"`
	WhatDo                 string   `json:"what_do"`
	TenantType             string   `json:"tenant_type"`
	RentalTiming           string   `json:"rental_timing"`
	FurnishType            string   `json:"furnish_type"`
	ReferenceID            string   `json:"reference_id"`
	PermitNumber           string   `json:"permit_number"`
	ReraRegistrationNumber string   `json:"rera_registration_number"`
	AgentName              string   `json:"agent_name"`
	AgentPhone             string   `json:"agent_phone"`
	AgentEmail             string   `json:"agent_email"`
	BrokerName             string   `json:"broker_name"`
	PageLink               string   `json:"page_link"`
	ImageURLs              []string `json:"image_urls"`
}

// ExtractProperties отправляет HTML модели и маппит ответ в кандидатов.
// Контракт fail-open: любой отказ (сеть, невалидный JSON, контракт) дает
// пустой список и запись в лог, но не ошибку - одна плохая страница не
// должна валить пакетный прогон.
func (a *Adapter) ExtractProperties(ctx context.Context, htmlContent string) ([]domain.CandidateProperty, error) {
	reply, err := a.complete(ctx, extractionPrompt+htmlContent)
	if err != nil {
		a.logger.Error("Extraction request failed, returning zero candidates", err, nil)
		return []domain.CandidateProperty{}, nil
	}

	rawJSON, err := extractJSON(reply)
	if err != nil {
		a.logger.Error("Extraction reply is not JSON, returning zero candidates", err, nil)
		return []domain.CandidateProperty{}, nil
	}

	if err := contracts.ValidateExtractedProperties([]byte(rawJSON)); err != nil {
		a.logger.Error("Extraction reply failed contract validation, returning zero candidates", err, nil)
		return []domain.CandidateProperty{}, nil
	}

	var payload extractedPropertiesPayload
	if err := json.Unmarshal([]byte(rawJSON), &payload); err != nil {
		a.logger.Error("Extraction reply unmarshal failed, returning zero candidates", err, nil)
		return []domain.CandidateProperty{}, nil
	}

	candidates := make([]domain.CandidateProperty, 0, len(payload.Properties))
	for _, p := range payload.Properties {
		candidates = append(candidates, toCandidate(p))
	}

	a.logger.Info("Extraction finished", port.Fields{"candidates": len(candidates)})
	return candidates, nil
}

// toCandidate применяет дефолты один раз на границе адаптера: дальше по
// пайплайну "отсутствующее поле" как случай не существует
func toCandidate(p extractedProperty) domain.CandidateProperty {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	imageURLs := p.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	bedrooms := p.Bedrooms
	if bedrooms < 0 {
		bedrooms = 0
	}
	bathrooms := p.Bathrooms
	if bathrooms < 0 {
		bathrooms = 0
	}

	return domain.CandidateProperty{
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Location:     p.Location,
		City:         p.City,
		County:       p.County,
		Neighborhood: p.Neighborhood,
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
		Area:         p.Area,
		PropertyType: p.PropertyType,
		FloorNumber:  p.FloorNumber,
		Features:     features,

		TermsAndCondition: p.TermsAndCondition,
		Mortgage:          p.Mortgage,
		WhatDo:            p.WhatDo,
		TenantType:        p.TenantType,
		RentalTiming:      p.RentalTiming,
		FurnishType:       p.FurnishType,

		ReferenceID:            p.ReferenceID,
		PermitNumber:           p.PermitNumber,
		ReraRegistrationNumber: p.ReraRegistrationNumber,
		AgentName:              p.AgentName,
		AgentPhone:             p.AgentPhone,
		AgentEmail:             p.AgentEmail,
		BrokerName:             p.BrokerName,

		PageLink:  p.PageLink,
		ImageURLs: imageURLs,
	}
}
