// Package hcl implements the config.Loader interface for HCL frame files.
package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/framegraphgo/internal/config"
	"github.com/vk/framegraphgo/internal/ctxlog"
	"github.com/vk/framegraphgo/internal/fsutil"
	"github.com/vk/framegraphgo/internal/schema"
)

// Loader reads .hcl frame files and translates them into the
// format-agnostic config model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads the frame declaration at path, which may be a single .hcl file
// or a directory searched recursively. Files merge into one model; pass
// order follows file order, then block order within a file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.resolveFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl frame files found at %q", path)
	}
	logger.Debug("Resolved frame files.", "count", len(files))

	frame := &config.Frame{}
	for _, file := range files {
		parsed, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", file, diags)
		}

		var fc schema.FrameConfig
		if diags := gohcl.DecodeBody(parsed.Body, nil, &fc); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", file, diags)
		}

		l.mergeFile(ctx, frame, &fc)
		logger.Debug("Loaded frame file.", "file", file,
			"resources", len(fc.Resources), "imports", len(fc.Imports), "passes", len(fc.Passes))
	}

	return &config.Model{Frame: frame}, nil
}

func (l *Loader) resolveFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("frame path %q: %w", path, err)
	}
	if info.IsDir() {
		return fsutil.FindFilesByExtension(path, ".hcl")
	}
	return []string{path}, nil
}

func (l *Loader) mergeFile(ctx context.Context, frame *config.Frame, fc *schema.FrameConfig) {
	logger := ctxlog.FromContext(ctx)
	for _, r := range fc.Resources {
		frame.Resources = append(frame.Resources, l.translateResource(r))
		logger.Debug("Declared transient resource.",
			"kind", r.Kind, "name", r.Name, "pass", r.Pass, "attrs", bodyAttributesForLogs(r.Remain))
	}
	for _, imp := range fc.Imports {
		frame.Imports = append(frame.Imports, l.translateImport(imp))
		logger.Debug("Declared imported resource.",
			"kind", imp.Kind, "name", imp.Name, "handle", imp.Handle, "attrs", bodyAttributesForLogs(imp.Remain))
	}
	for _, p := range fc.Passes {
		frame.Passes = append(frame.Passes, l.translatePass(p))
	}
}

// translateResource converts the HCL-specific resource schema into the
// agnostic model.
func (l *Loader) translateResource(s *schema.Resource) *config.Resource {
	return &config.Resource{
		Kind: s.Kind,
		Name: s.Name,
		Pass: s.Pass,
		Body: s.Remain,
	}
}

// translateImport converts the HCL-specific import schema into the agnostic
// model.
func (l *Loader) translateImport(s *schema.Import) *config.Import {
	return &config.Import{
		Kind:   s.Kind,
		Name:   s.Name,
		Handle: s.Handle,
		Body:   s.Remain,
	}
}

// translatePass converts the HCL-specific pass schema into the agnostic
// model.
func (l *Loader) translatePass(s *schema.Pass) *config.Pass {
	return &config.Pass{
		Name:       s.Name,
		Reads:      s.Reads,
		Writes:     s.Writes,
		SideEffect: s.SideEffect,
	}
}

// DecodeDescriptor decodes the kind-specific remainder of a resource block
// into the descriptor struct the kind registered. No evaluation context:
// frame files declare literal descriptors.
func DecodeDescriptor(body hcl.Body, desc any) error {
	if body == nil {
		return nil
	}
	if diags := gohcl.DecodeBody(body, nil, desc); diags.HasErrors() {
		return fmt.Errorf("decoding descriptor: %w", diags)
	}
	return nil
}
