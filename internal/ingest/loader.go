package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/costaverde/lead-matcher/internal/crm"
)

// LoadLeadsFile reads a JSON array of raw lead records and normalizes each
// one. Malformed records are skipped with a warning, the rest load anyway.
func LoadLeadsFile(path string, logger *zap.Logger) (*crm.Leads, error) {
	raws, err := readRecords(path)
	if err != nil {
		return nil, fmt.Errorf("read leads file: %w", err)
	}

	leads := &crm.Leads{}
	for i, raw := range raws {
		lead, err := NormalizeLead(raw, true)
		if err != nil {
			logger.Warn("skipping malformed lead record",
				zap.String("path", path),
				zap.Int("position", i),
				zap.Error(err),
			)
			continue
		}
		leads.Items = append(leads.Items, lead)
	}
	return leads, nil
}

// LoadPropertiesFile reads a JSON array of raw listing records and
// normalizes each one, skipping malformed records with a warning.
func LoadPropertiesFile(path string, logger *zap.Logger) (*crm.Properties, error) {
	raws, err := readRecords(path)
	if err != nil {
		return nil, fmt.Errorf("read properties file: %w", err)
	}

	properties := &crm.Properties{}
	for i, raw := range raws {
		property, err := NormalizeProperty(raw, true)
		if err != nil {
			logger.Warn("skipping malformed property record",
				zap.String("path", path),
				zap.Int("position", i),
				zap.Error(err),
			)
			continue
		}
		properties.Items = append(properties.Items, property)
	}
	return properties, nil
}

func readRecords(path string) ([]map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raws []map[string]any
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	return raws, nil
}
