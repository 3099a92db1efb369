package contracts

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"listing-service/internal/core/domain"
)

//go:embed schemas/*.json
var schemasFS embed.FS

// Ключи схем тел запросов
const (
	PropertyCreate = "PropertyCreateRequest"
	PropertyUpdate = "PropertyUpdateRequest"
	InquiryCreate  = "InquiryCreateRequest"
	InquiryStatus  = "InquiryStatusRequest"
	ContactCreate  = "ContactCreateRequest"
	ContactStatus  = "ContactStatusRequest"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	paths, err := fs.Glob(schemasFS, "schemas/*.json")
	if err != nil {
		log.Fatalf("error listing request schemas: %v", err)
	}

	// сначала регистрируем все ресурсы, затем компилируем
	for _, path := range paths {
		file, err := schemasFS.Open(path)
		if err != nil {
			log.Fatalf("failed to open schema %s: %v", path, err)
		}
		err = compiler.AddResource(path, file)
		file.Close()
		if err != nil {
			log.Fatalf("failed to add schema resource %s: %v", path, err)
		}
	}

	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			log.Fatalf("failed to compile schema %s: %v", path, err)
		}
		compiledSchemas[keyFromPath(path)] = schema
	}
}

// keyFromPath: "schemas/property-create.json" -> "PropertyCreateRequest"
func keyFromPath(path string) string {
	name := strings.TrimSuffix(strings.TrimPrefix(path, "schemas/"), ".json")
	caser := cases.Title(language.English)

	var b strings.Builder
	for _, part := range strings.Split(name, "-") {
		b.WriteString(caser.String(part))
	}
	b.WriteString("Request")
	return b.String()
}

// Validate проверяет тело запроса по схеме. Нарушение возвращается как
// *domain.ValidationError с путем к полю в нотации "location.city".
func Validate(key string, body []byte) error {
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema %q not registered", key)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return domain.NewValidationError("body", "must be valid JSON")
	}

	if err := schema.Validate(v); err != nil {
		var vErr *jsonschema.ValidationError
		if errors.As(err, &vErr) {
			return toDomainError(vErr)
		}
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

func toDomainError(err *jsonschema.ValidationError) *domain.ValidationError {
	leaf := firstLeaf(err)
	field := pointerToField(leaf.InstanceLocation)

	if strings.HasSuffix(leaf.KeywordLocation, "/required") {
		if missing := firstQuoted(leaf.Message); missing != "" {
			if field == "" {
				field = missing
			} else {
				field += "." + missing
			}
			return domain.NewValidationError(field, "is required")
		}
	}
	if field == "" {
		field = "body"
	}
	return domain.NewValidationError(field, leaf.Message)
}

func firstLeaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}

// pointerToField: "/features/bedrooms" -> "features.bedrooms"
func pointerToField(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	parts := strings.Split(ptr, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return strings.Join(parts, ".")
}

func firstQuoted(msg string) string {
	for _, q := range []string{"'", `"`} {
		start := strings.Index(msg, q)
		if start < 0 {
			continue
		}
		end := strings.Index(msg[start+1:], q)
		if end < 0 {
			continue
		}
		return msg[start+1 : start+1+end]
	}
	return ""
}
