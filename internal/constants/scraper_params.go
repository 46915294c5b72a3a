package constants

// Параметры пайплайна скрейпинга. Значения подобраны под поведение
// реальных площадок: слишком короткий HTML почти наверняка мусор.
const (
	// PlaceholderImageURL подставляется, когда ни одно изображение не выжило
	PlaceholderImageURL = "https://placehold.co/600x400.png"

	// MinHTMLLength - минимальная длина HTML, которую имеет смысл отдавать модели
	MinHTMLLength = 100

	// HistoryLimit - сколько последних записей истории храним
	HistoryLimit = 50

	// PastedHTMLDetails - описание операции для истории при ручной вставке HTML
	PastedHTMLDetails = "Pasted HTML content"
)
