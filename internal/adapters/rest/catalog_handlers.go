package rest

import (
	"encoding/json"
	"net/http"

	"property-scraper-service/internal/contextkeys"
	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"
	"property-scraper-service/internal/core/port/usecases"

	"github.com/go-chi/chi/v5"
)

// CatalogHandler обслуживает сохраненную коллекцию записей и историю
type CatalogHandler struct {
	catalogUC   usecases.CatalogPort
	reEnhanceUC usecases.ReEnhancePort
}

func NewCatalogHandler(catalogUC usecases.CatalogPort, reEnhanceUC usecases.ReEnhancePort) *CatalogHandler {
	return &CatalogHandler{
		catalogUC:   catalogUC,
		reEnhanceUC: reEnhanceUC,
	}
}

// ListProperties обрабатывает GET /api/v1/properties
func (h *CatalogHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})

	records, err := h.catalogUC.List(r.Context())
	if err != nil {
		logger.Error("List properties use case failed", err, nil)
		WriteJSONError(w, statusForError(err), "Failed to load properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, records)
}

// SaveProperty обрабатывает POST /api/v1/properties.
// Сохранение идет через merge: дубликат обновит существующую запись.
func (h *CatalogHandler) SaveProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SaveProperty"})

	var record domain.PropertyRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		logger.Warn("Failed to decode property body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"property_id": record.ID})
	handlerLogger.Info("Processing request to save property", nil)

	if err := h.catalogUC.Save(r.Context(), []domain.PropertyRecord{record}); err != nil {
		handlerLogger.Error("Save property use case failed", err, nil)
		WriteJSONError(w, statusForError(err), "Failed to save property")
		return
	}

	handlerLogger.Info("Property saved", nil)
	w.WriteHeader(http.StatusCreated)
}

// UpdateProperty обрабатывает PUT /api/v1/properties/{propertyID}
func (h *CatalogHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProperty"})

	propertyID := chi.URLParam(r, "propertyID")
	if propertyID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Missing property id in URL")
		return
	}

	var record domain.PropertyRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		logger.Warn("Failed to decode property body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// id в URL главнее, чем id в теле
	record.ID = propertyID

	handlerLogger := logger.WithFields(port.Fields{"property_id": propertyID})
	handlerLogger.Info("Processing request to update property", nil)

	if err := h.catalogUC.Update(r.Context(), record); err != nil {
		handlerLogger.Error("Update property use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, record)
}

// DeleteProperty обрабатывает DELETE /api/v1/properties/{propertyID}
func (h *CatalogHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProperty"})

	propertyID := chi.URLParam(r, "propertyID")
	if propertyID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Missing property id in URL")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"property_id": propertyID})
	handlerLogger.Info("Processing request to delete property", nil)

	if err := h.catalogUC.Delete(r.Context(), propertyID); err != nil {
		handlerLogger.Error("Delete property use case failed", err, nil)
		WriteJSONError(w, statusForError(err), "Failed to delete property")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReEnhanceProperty обрабатывает POST /api/v1/properties/{propertyID}/enhance
func (h *CatalogHandler) ReEnhanceProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ReEnhanceProperty"})

	propertyID := chi.URLParam(r, "propertyID")
	if propertyID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Missing property id in URL")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"property_id": propertyID})
	handlerLogger.Info("Processing request to re-enhance property", nil)

	record, err := h.reEnhanceUC.Execute(r.Context(), propertyID)
	if err != nil {
		handlerLogger.Error("Re-enhance use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	handlerLogger.Info("Property re-enhanced", nil)
	RespondWithJSON(w, http.StatusOK, record)
}

// GetHistory обрабатывает GET /api/v1/history
func (h *CatalogHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetHistory"})

	entries, err := h.catalogUC.History(r.Context())
	if err != nil {
		logger.Error("Get history use case failed", err, nil)
		WriteJSONError(w, statusForError(err), "Failed to load history")
		return
	}

	RespondWithJSON(w, http.StatusOK, entries)
}
