package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/wasim-s-creator/sdlc-demo/internal/diffscan"
)

// DefaultSchemaPath returns the report schema location, honoring
// SDLC_SCHEMA_PATH for test and CI overrides.
func DefaultSchemaPath() string {
	if p := os.Getenv("SDLC_SCHEMA_PATH"); p != "" {
		return p
	}
	return filepath.Join("schemas", "report.schema.json")
}

// Payload is the machine-readable form of a report, stored with each run
// and validated against schemas/report.schema.json.
type Payload struct {
	Branch          string                    `json:"branch"`
	ShortSHA        string                    `json:"short_sha"`
	GeneratedAt     string                    `json:"generated_at"`
	Stat            string                    `json:"stat"`
	Narrative       []string                  `json:"narrative"`
	Findings        []diffscan.Finding        `json:"findings"`
	Recommendations []diffscan.Recommendation `json:"recommendations"`
	Notes           []string                  `json:"notes"`
}

func (r Report) Payload() Payload {
	return Payload{
		Branch:          r.Branch,
		ShortSHA:        r.ShortSHA,
		GeneratedAt:     r.GeneratedAt.Format("2006-01-02T15:04:05Z"),
		Stat:            r.Stat,
		Narrative:       emptyNotNil(r.Narrative),
		Findings:        findingsNotNil(r.Findings),
		Recommendations: recsNotNil(r.Recommendations),
		Notes:           emptyNotNil(r.Notes),
	}
}

func (r Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.Payload(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// ValidateJSON checks a serialized payload against the report schema.
func ValidateJSON(schemaPath string, data []byte) error {
	abspath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}
	schema, err := jsonschema.Compile("file://" + abspath)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("report failed schema validation: %w", err)
	}
	return nil
}

func emptyNotNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func findingsNotNil(values []diffscan.Finding) []diffscan.Finding {
	if values == nil {
		return []diffscan.Finding{}
	}
	return values
}

func recsNotNil(values []diffscan.Recommendation) []diffscan.Recommendation {
	if values == nil {
		return []diffscan.Recommendation{}
	}
	return values
}
