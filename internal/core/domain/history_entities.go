package domain

import "time"

type HistoryType string

const (
	HistoryTypeURL  HistoryType = "URL"
	HistoryTypeHTML HistoryType = "HTML"
	HistoryTypeBulk HistoryType = "BULK"
)

// HistoryEntry - запись аудита одной операции скрейпинга
type HistoryEntry struct {
	ID            string      `json:"id"`
	Type          HistoryType `json:"type"`
	Details       string      `json:"details"`
	PropertyCount int         `json:"propertyCount"`
	Date          time.Time   `json:"date"`
}
