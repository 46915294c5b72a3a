package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Добавляем все схемы как ресурсы, чтобы они могли ссылаться
	// друг на друга через $ref
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			file, openErr := schemasFS.Open(path)
			if openErr != nil {
				return openErr
			}
			defer file.Close()
			if err := compiler.AddResource(path, file); err != nil {
				log.Fatalf("failed to add schema resource %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("failed to walk schemas: %v", err)
	}

	for _, name := range []string{"schemas/extracted_properties.json"} {
		schema, err := compiler.Compile(name)
		if err != nil {
			log.Fatalf("failed to compile schema %s: %v", name, err)
		}
		compiledSchemas[name] = schema
	}
}

// ValidateExtractedProperties проверяет сырой JSON-ответ модели по контракту
// извлечения. Невалидный ответ отбрасывается до маппинга в доменные типы.
func ValidateExtractedProperties(rawJSON []byte) error {
	schema := compiledSchemas["schemas/extracted_properties.json"]

	var v interface{}
	decoder := json.NewDecoder(bytes.NewReader(rawJSON))
	decoder.UseNumber()
	if err := decoder.Decode(&v); err != nil {
		return fmt.Errorf("extracted properties payload is not valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("extracted properties payload failed schema validation: %w", err)
	}
	return nil
}
