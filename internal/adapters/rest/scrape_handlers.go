package rest

import (
	"encoding/json"
	"net/http"

	"property-scraper-service/internal/contextkeys"
	"property-scraper-service/internal/core/port"
	"property-scraper-service/internal/core/port/usecases"
)

// ScrapeHandler обрабатывает запуск скрейпинга по URL, HTML и пачке URL
type ScrapeHandler struct {
	scrapeURLUC  usecases.ScrapeURLPort
	scrapeHTMLUC usecases.ScrapeHTMLPort
	scrapeBulkUC usecases.ScrapeBulkPort
}

func NewScrapeHandler(
	scrapeURLUC usecases.ScrapeURLPort,
	scrapeHTMLUC usecases.ScrapeHTMLPort,
	scrapeBulkUC usecases.ScrapeBulkPort,
) *ScrapeHandler {
	return &ScrapeHandler{
		scrapeURLUC:  scrapeURLUC,
		scrapeHTMLUC: scrapeHTMLUC,
		scrapeBulkUC: scrapeBulkUC,
	}
}

// ScrapeURL обрабатывает POST /api/v1/scrape/url
func (h *ScrapeHandler) ScrapeURL(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ScrapeURL"})

	var reqDTO ScrapeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode scrape url request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"url": reqDTO.URL})
	handlerLogger.Info("Processing request to scrape URL", nil)

	records, err := h.scrapeURLUC.Execute(r.Context(), reqDTO.URL)
	if err != nil {
		handlerLogger.Error("Scrape URL use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	handlerLogger.Info("Scrape URL finished", port.Fields{"properties_found": len(records)})
	RespondWithJSON(w, http.StatusOK, records)
}

// ScrapeHTML обрабатывает POST /api/v1/scrape/html
func (h *ScrapeHandler) ScrapeHTML(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ScrapeHTML"})

	var reqDTO ScrapeHTMLRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode scrape html request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"html_length": len(reqDTO.HTML)})
	handlerLogger.Info("Processing request to scrape pasted HTML", nil)

	records, err := h.scrapeHTMLUC.Execute(r.Context(), reqDTO.HTML, reqDTO.Origin)
	if err != nil {
		handlerLogger.Error("Scrape HTML use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	handlerLogger.Info("Scrape HTML finished", port.Fields{"properties_found": len(records)})
	RespondWithJSON(w, http.StatusOK, records)
}

// ScrapeBulk обрабатывает POST /api/v1/scrape/bulk
func (h *ScrapeHandler) ScrapeBulk(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ScrapeBulk"})

	var reqDTO ScrapeBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode scrape bulk request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	logger.Info("Processing request to scrape URL batch", nil)

	records, err := h.scrapeBulkUC.Execute(r.Context(), reqDTO.URLs)
	if err != nil {
		logger.Error("Scrape bulk use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	logger.Info("Scrape bulk finished", port.Fields{"properties_found": len(records)})
	RespondWithJSON(w, http.StatusOK, records)
}
