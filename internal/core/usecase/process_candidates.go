package usecase

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"property-scraper-service/internal/constants"
	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"

	"github.com/google/uuid"
)

// CandidateProcessor превращает извлеченных кандидатов одной страницы в
// готовые записи: хостит изображения, улучшает текст, собирает запись.
// Кандидаты обрабатываются конкурентно, но итоговый список сохраняет
// порядок извлечения.
type CandidateProcessor struct {
	imageFetcher port.ImageFetcherPort
	imageStore   port.ImageStorePort
	enhancer     port.ContentEnhancerPort
	logger       port.LoggerPort
}

func NewCandidateProcessor(
	imageFetcher port.ImageFetcherPort,
	imageStore port.ImageStorePort,
	enhancer port.ContentEnhancerPort,
	logger port.LoggerPort,
) *CandidateProcessor {
	return &CandidateProcessor{
		imageFetcher: imageFetcher,
		imageStore:   imageStore,
		enhancer:     enhancer,
		logger:       logger.WithFields(port.Fields{"component": "candidate_processor"}),
	}
}

// ProcessAll обрабатывает всех кандидатов страницы. Отказ обработки одного
// кандидата не влияет на остальных: компонент деградирует до пропусков и
// плейсхолдеров, но не возвращает ошибку.
func (p *CandidateProcessor) ProcessAll(ctx context.Context, candidates []domain.CandidateProperty, originURL string) []domain.PropertyRecord {
	if len(candidates) == 0 {
		return []domain.PropertyRecord{}
	}

	p.logger.Info("Processing extracted candidates", port.Fields{
		"count": len(candidates), "origin": originURL,
	})

	records := make([]domain.PropertyRecord, len(candidates))

	var wg sync.WaitGroup
	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, cand domain.CandidateProperty) {
			defer wg.Done()
			records[i] = p.assemble(ctx, cand, originURL)
		}(i, cand)
	}
	wg.Wait()

	return records
}

// assemble - единица работы для одного кандидата
func (p *CandidateProcessor) assemble(ctx context.Context, cand domain.CandidateProperty, originURL string) domain.PropertyRecord {
	propertyID := "prop-" + uuid.NewString()

	imageURLs, primaryURL := p.processImages(ctx, cand.ImageURLs, originURL, propertyID)

	title := cand.Title
	description := cand.Description
	var enhancedTitle, enhancedDescription *string

	// Улучшение чисто аддитивно: вызываем только при заполненных полях,
	// при отказе остаемся на оригинальном тексте
	if cand.Title != "" && cand.Description != "" {
		enhanced, err := p.enhancer.Enhance(ctx, cand.Title, cand.Description)
		if err != nil {
			p.logger.Warn("Enhancement failed, keeping original content", port.Fields{
				"property_id": propertyID, "error": err.Error(),
			})
		} else {
			title = enhanced.Title
			description = enhanced.Description
			enhancedTitle = &enhanced.Title
			enhancedDescription = &enhanced.Description
		}
	}

	features := cand.Features
	if features == nil {
		features = []string{}
	}

	return domain.PropertyRecord{
		ID:          propertyID,
		OriginalURL: originURL,
		PageLink:    cand.PageLink,
		ReferenceID: cand.ReferenceID,

		Title:               title,
		Description:         description,
		OriginalTitle:       cand.Title,
		OriginalDescription: cand.Description,
		EnhancedTitle:       enhancedTitle,
		EnhancedDescription: enhancedDescription,

		Price:        cand.Price,
		Location:     cand.Location,
		City:         cand.City,
		County:       cand.County,
		Neighborhood: cand.Neighborhood,
		Bedrooms:     cand.Bedrooms,
		Bathrooms:    cand.Bathrooms,
		Area:         cand.Area,
		PropertyType: cand.PropertyType,
		FloorNumber:  cand.FloorNumber,
		Features:     features,

		TermsAndCondition: cand.TermsAndCondition,
		Mortgage:          cand.Mortgage,
		WhatDo:            cand.WhatDo,
		TenantType:        cand.TenantType,
		RentalTiming:      cand.RentalTiming,
		FurnishType:       cand.FurnishType,

		PermitNumber:           cand.PermitNumber,
		ReraRegistrationNumber: cand.ReraRegistrationNumber,
		AgentName:              cand.AgentName,
		AgentPhone:             cand.AgentPhone,
		AgentEmail:             cand.AgentEmail,
		BrokerName:             cand.BrokerName,

		ImageURL:  primaryURL,
		ImageURLs: imageURLs,

		ScrapedAt: time.Now().UTC(),
	}
}

// resolveImageURLs приводит сырые URL изображений к абсолютным относительно
// страницы-источника. Неразрешимые URL молча отбрасываются (с логом).
func (p *CandidateProcessor) resolveImageURLs(rawURLs []string, originURL string) []string {
	base, baseErr := url.Parse(originURL)

	resolved := make([]string, 0, len(rawURLs))
	for _, raw := range rawURLs {
		if raw == "" {
			continue
		}
		if baseErr != nil || base == nil || !base.IsAbs() {
			// База не URL (например, сентинел вставленного HTML) -
			// оставляем только уже абсолютные ссылки
			if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
				resolved = append(resolved, raw)
			} else {
				p.logger.Warn("Dropping unresolvable image URL", port.Fields{"image_url": raw, "base": originURL})
			}
			continue
		}

		ref, err := url.Parse(raw)
		if err != nil {
			p.logger.Warn("Dropping malformed image URL", port.Fields{"image_url": raw, "error": err.Error()})
			continue
		}
		resolved = append(resolved, base.ResolveReference(ref).String())
	}
	return resolved
}

// processImages скачивает, дедуплицирует и хостит изображения кандидата.
// Отказ одного изображения не прерывает остальные; при пустом итоге
// подставляется плейсхолдер. Возвращает список URL в исходном порядке и
// первичное изображение.
func (p *CandidateProcessor) processImages(ctx context.Context, rawURLs []string, originURL, propertyID string) ([]string, string) {
	absolute := p.resolveImageURLs(rawURLs, originURL)

	// Этап 1: конкурентное скачивание, результаты по индексам
	downloaded := make([]*port.FetchedImage, len(absolute))
	var wg sync.WaitGroup
	for i, imgURL := range absolute {
		wg.Add(1)
		go func(i int, imgURL string) {
			defer wg.Done()
			img, err := p.imageFetcher.FetchImage(ctx, imgURL)
			if err != nil {
				p.logger.Warn("Image download failed", port.Fields{
					"property_id": propertyID, "image_url": imgURL, "error": err.Error(),
				})
				return
			}
			downloaded[i] = img
		}(i, imgURL)
	}
	wg.Wait()

	// Этап 2: отбрасываем перцептивные дубликаты в исходном порядке,
	// чтобы результат был детерминированным
	seen := newImageHashSet()
	for i, img := range downloaded {
		if img == nil {
			continue
		}
		if seen.isDuplicate(img.Data) {
			p.logger.Debug("Skipping duplicate image", port.Fields{
				"property_id": propertyID, "image_url": absolute[i],
			})
			downloaded[i] = nil
		}
	}

	// Этап 3: конкурентная загрузка выживших в хранилище
	hosted := make([]string, len(absolute))
	for i, img := range downloaded {
		if img == nil {
			continue
		}
		wg.Add(1)
		go func(i int, img *port.FetchedImage) {
			defer wg.Done()

			ext := imageFileExtension(absolute[i], img.ContentType)
			key := propertyID + "-" + uuid.NewString() + "." + ext

			publicURL, err := p.imageStore.SaveImage(ctx, key, img.Data, finalContentType(img.ContentType, ext))
			if err != nil {
				p.logger.Warn("Image upload failed", port.Fields{
					"property_id": propertyID, "image_url": absolute[i], "error": err.Error(),
				})
				return
			}

			// Проверка доступности best-effort: отказ логируем, но загрузку
			// не инвалидируем
			if err := p.imageFetcher.Validate(ctx, publicURL); err != nil {
				p.logger.Warn("Hosted image validation failed", port.Fields{
					"public_url": publicURL, "error": err.Error(),
				})
			}

			hosted[i] = publicURL
		}(i, img)
	}
	wg.Wait()

	finalURLs := make([]string, 0, len(hosted))
	for _, u := range hosted {
		if u != "" {
			finalURLs = append(finalURLs, u)
		}
	}

	if len(finalURLs) == 0 {
		finalURLs = append(finalURLs, constants.PlaceholderImageURL)
	}

	return finalURLs, finalURLs[0]
}

// imageFileExtension выводит расширение файла из URL, с фолбэком на
// content-type и затем на jpg
func imageFileExtension(imageURL, contentType string) string {
	path := imageURL
	if q := strings.IndexByte(path, '?'); q >= 0 {
		path = path[:q]
	}
	if dot := strings.LastIndexByte(path, '.'); dot >= 0 && dot < len(path)-1 {
		ext := path[dot+1:]
		if len(ext) <= 4 && !strings.ContainsAny(ext, "/\\") {
			return strings.ToLower(ext)
		}
	}
	if strings.HasPrefix(contentType, "image/") {
		return strings.TrimPrefix(contentType, "image/")
	}
	return "jpg"
}

func finalContentType(contentType, ext string) string {
	if strings.HasPrefix(contentType, "image/") {
		return contentType
	}
	return "image/" + ext
}
