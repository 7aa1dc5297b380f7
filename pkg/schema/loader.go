package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/formforge/formforge/pkg/model"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat resolves the encoding from a file name. Unrecognized
// extensions default to JSON, the stored document shape.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads and decodes a form document from disk, picking the codec by
// file extension.
func LoadFile(path string) (model.Form, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("read form document: %w", err)
	}
	return Decode(raw, DetectFormat(path))
}

// Decode parses a raw document in the given format.
func Decode(raw []byte, format Format) (model.Form, error) {
	if format == FormatYAML {
		return DecodeYAML(raw)
	}
	return DecodeJSON(raw)
}

// Encode serializes a form in the given format.
func Encode(form model.Form, format Format) ([]byte, error) {
	if format == FormatYAML {
		return EncodeYAML(form)
	}
	return EncodeJSON(form)
}
