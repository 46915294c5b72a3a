package usecase

import (
	"bytes"
	"image"

	// регистрация декодеров для типичных форматов листингов
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/corona10/goimagehash"
	"github.com/nfnt/resize"
)

// imageHashSet отслеживает перцептивные хэши уже принятых изображений
// одного объявления. Площадки часто отдают одну и ту же фотографию в
// нескольких размерах - pHash ловит такие повторы, byte-equality нет.
type imageHashSet struct {
	seen map[string]struct{}
}

func newImageHashSet() *imageHashSet {
	return &imageHashSet{seen: make(map[string]struct{})}
}

// isDuplicate возвращает true, если изображение с таким же перцептивным
// хэшем уже встречалось. Любая ошибка декодирования трактуется как "не
// дубликат": лучше оставить лишнюю фотографию, чем потерять валидную.
func (s *imageHashSet) isDuplicate(data []byte) bool {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return false
	}

	scaled := resize.Resize(64, 64, img, resize.Bilinear)
	hash, err := goimagehash.PerceptionHash(scaled)
	if err != nil {
		return false
	}

	key := hash.ToString()
	if _, ok := s.seen[key]; ok {
		return true
	}
	s.seen[key] = struct{}{}
	return false
}
