package flowspec

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/martinemde/taskflow/internal/ctxlog"
)

// Options controls Load.
type Options struct {
	// Format overrides extension-based detection when set.
	Format Format
	// Vars are exposed to HCL expressions as var.<name>.
	Vars map[string]string
}

// Load reads and decodes the specification at path.
func Load(ctx context.Context, path string, opts Options) (Spec, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)

	format := opts.Format
	if format == "" {
		f, err := FormatForPath(path)
		if err != nil {
			return Spec{}, err
		}
		format = f
	}
	logger.Debug("Loading flow spec.", "format", format)

	src, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("reading spec: %w", err)
	}

	spec, err := Decode(format, path, src, opts.Vars)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return Spec{}, err
	}

	logger.Debug("Flow spec decoded.", "title", spec.Title, "nodes", len(spec.Nodes), "edges", len(spec.Edges))
	return spec, nil
}
