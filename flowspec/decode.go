package flowspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a specification encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// ParseFormat accepts a format name, case-insensitive, with "yml" as an alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unknown spec format %q", s)
	}
}

// FormatForPath infers the format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer spec format of %q: no extension", path)
	}
	return ParseFormat(ext)
}

// DecodeJSON decodes a JSON specification. Trailing data after the document
// is an error.
func DecodeJSON(src []byte) (Spec, error) {
	dec := json.NewDecoder(bytes.NewReader(src))
	var w wireSpec
	if err := dec.Decode(&w); err != nil {
		return Spec{}, &DecodeError{Format: FormatJSON, Err: err}
	}
	if dec.More() {
		return Spec{}, &DecodeError{Format: FormatJSON, Msg: "unexpected data after the specification object"}
	}
	return w.spec(FormatJSON)
}

// DecodeYAML decodes a YAML specification.
func DecodeYAML(src []byte) (Spec, error) {
	var w wireSpec
	if err := yaml.Unmarshal(src, &w); err != nil {
		return Spec{}, &DecodeError{Format: FormatYAML, Err: err}
	}
	return w.spec(FormatYAML)
}

// Decode dispatches on format. name labels HCL diagnostics; vars only apply
// to HCL.
func Decode(format Format, name string, src []byte, vars map[string]string) (Spec, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(src)
	case FormatYAML:
		return DecodeYAML(src)
	case FormatHCL:
		return DecodeHCL(src, name, vars)
	default:
		return Spec{}, &DecodeError{Format: format, Msg: "unsupported format"}
	}
}
