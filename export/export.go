// Package export hands diagram text to the collaborators downstream of the
// serializer: a file on disk and a mermaid.ink renderer link.
package export

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the extension given to diagram files written without one.
const Ext = ".mmd"

// InkBase is the renderer endpoint InkURL links to.
const InkBase = "https://mermaid.ink"

// ErrEmptyDiagram is returned when there is no diagram text to export.
var ErrEmptyDiagram = errors.New("no diagram to export")

// Kind selects the image format of a renderer link.
type Kind string

const (
	KindImage Kind = "img"
	KindSVG   Kind = "svg"
)

// WriteDiagram writes text to path, adding Ext when path has no extension
// and creating missing parent directories. It returns the path written.
func WriteDiagram(path, text string) (string, error) {
	if text == "" {
		return "", ErrEmptyDiagram
	}
	if filepath.Ext(path) == "" {
		path += Ext
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing diagram: %w", err)
	}
	return path, nil
}

// InkURL returns the mermaid.ink link that renders text. No request is made.
func InkURL(text string, kind Kind) (string, error) {
	if text == "" {
		return "", ErrEmptyDiagram
	}
	switch kind {
	case KindImage, KindSVG:
	case "":
		kind = KindImage
	default:
		return "", fmt.Errorf("unknown render kind %q", kind)
	}
	return InkBase + "/" + string(kind) + "/" + base64.URLEncoding.EncodeToString([]byte(text)), nil
}

// FileStem derives a file name stem from a flow title by joining its words
// with underscores. Path separators are dropped; an empty result falls back
// to "taskflow".
func FileStem(title string) string {
	words := strings.FieldsFunc(title, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '/' || r == '\\'
	})
	if len(words) == 0 {
		return "taskflow"
	}
	return strings.Join(words, "_")
}
