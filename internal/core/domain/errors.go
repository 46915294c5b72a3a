package domain

import "fmt"

// FetchError - страница или изображение не получены: плохой статус либо
// сетевая ошибка. URL всегда включен в текст ошибки.
type FetchError struct {
	URL        string
	StatusCode int
	Reason     string
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("could not retrieve content from %s: status %d: %s", e.URL, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("could not retrieve content from %s: %s", e.URL, e.Reason)
}

// ValidationError - некорректный вход верхнеуровневой операции,
// обнаруживается до любого I/O
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

// NotFoundError - update по неизвестному id. Для delete отсутствие записи
// не ошибка (операция идемпотентна).
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("property %s not found", e.ID)
}

// StorageError - отказ самого хранилища коллекций. В отличие от ошибок
// отдельных изображений это фатально для всей операции: хранилище -
// system of record и молча терять записи нельзя.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
