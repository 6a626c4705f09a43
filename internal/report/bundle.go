package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pucksight/internal/storage"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const bundleSchemaVersion = "v1"

// Bundle is the exportable form of a report: content plus the validation
// outcome it shipped with, validated against a schema before it leaves the
// process.
type Bundle struct {
	SchemaVersion string           `json:"schema_version"`
	Report        BundleReport     `json:"report"`
	Validation    BundleValidation `json:"validation"`
	Meta          BundleMeta       `json:"meta"`
}

type BundleReport struct {
	ID         string `json:"id"`
	Mode       string `json:"mode"`
	TemplateID string `json:"template_id,omitempty"`
	ReportType string `json:"report_type,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Content    string `json:"content"`
}

type BundleValidation struct {
	Valid           bool     `json:"valid"`
	Warnings        []string `json:"warnings"`
	MissingSections []string `json:"missing_sections"`
}

type BundleMeta struct {
	GeneratedAt string `json:"generated_at"`
	CreatedAt   string `json:"created_at"`
}

const bundleSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["schema_version", "report", "validation", "meta"],
	"properties": {
		"schema_version": {"const": "v1"},
		"report": {
			"type": "object",
			"required": ["id", "mode", "content"],
			"properties": {
				"id": {"type": "string", "minLength": 1},
				"mode": {"type": "string", "minLength": 1},
				"template_id": {"type": "string"},
				"report_type": {"type": "string"},
				"subject": {"type": "string"},
				"content": {"type": "string", "minLength": 1}
			}
		},
		"validation": {
			"type": "object",
			"required": ["valid", "warnings", "missing_sections"],
			"properties": {
				"valid": {"type": "boolean"},
				"warnings": {"type": "array", "items": {"type": "string"}},
				"missing_sections": {"type": "array", "items": {"type": "string"}}
			}
		},
		"meta": {
			"type": "object",
			"required": ["generated_at", "created_at"]
		}
	}
}`

var (
	bundleSchemaOnce     sync.Once
	compiledBundleSchema *jsonschema.Schema
	bundleSchemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	bundleSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("bundle.schema.json", strings.NewReader(bundleSchema)); err != nil {
			bundleSchemaErr = err
			return
		}
		compiledBundleSchema, bundleSchemaErr = compiler.Compile("bundle.schema.json")
	})
	return compiledBundleSchema, bundleSchemaErr
}

// NewBundle builds the exportable form of a persisted report.
func NewBundle(r *storage.Report) *Bundle {
	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	missing := r.MissingSections
	if missing == nil {
		missing = []string{}
	}
	return &Bundle{
		SchemaVersion: bundleSchemaVersion,
		Report: BundleReport{
			ID:         r.ID,
			Mode:       r.Mode,
			TemplateID: r.TemplateID,
			ReportType: r.ReportType,
			Subject:    r.Subject,
			Content:    r.Content,
		},
		Validation: BundleValidation{
			Valid:           r.Valid,
			Warnings:        warnings,
			MissingSections: missing,
		},
		Meta: BundleMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
		},
	}
}

// Validate checks the bundle against the embedded schema.
func (b *Bundle) Validate() error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("bundle schema unavailable: %w", err)
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("bundle failed schema validation: %w", err)
	}
	return nil
}

// SaveBundle validates and writes the bundle as indented JSON.
func SaveBundle(path string, b *Bundle) error {
	if err := b.Validate(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, raw, 0644)
}
