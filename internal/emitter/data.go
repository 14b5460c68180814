package emitter

import (
	"encoding/json"
	"fmt"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

// EncodeRecords serializes cases into the data-file JSON: one flat list
// ordered positive, negative, boundary.
func EncodeRecords(cases map[domain.Category][]domain.TestCaseRecord) ([]byte, error) {
	ordered := make([]domain.TestCaseRecord, 0)
	for _, cat := range domain.Categories() {
		ordered = append(ordered, cases[cat]...)
	}
	data, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return nil, domain.NewError("emit", "", "", "encoding test data", err)
	}
	return data, nil
}

// DecodeRecords parses a data file and enforces the record invariants:
// known categories, unique non-empty ids and at least one field per record.
func DecodeRecords(data []byte) ([]domain.TestCaseRecord, error) {
	var records []domain.TestCaseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, domain.NewError("validate", "", "", "decoding test data", err)
	}

	known := map[domain.Category]bool{
		domain.CategoryPositive: true,
		domain.CategoryNegative: true,
		domain.CategoryBoundary: true,
	}
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, domain.NewError("validate", "", "", fmt.Sprintf("record %d has an empty id", i), nil)
		}
		if seen[r.ID] {
			return nil, domain.NewError("validate", "", "", fmt.Sprintf("duplicate record id %q", r.ID), nil)
		}
		seen[r.ID] = true
		if !known[r.Category] {
			return nil, domain.NewError("validate", "", r.ID, fmt.Sprintf("unknown category %q", r.Category), nil)
		}
		if len(r.Fields) == 0 {
			return nil, domain.NewError("validate", "", r.ID, "record has no fields", nil)
		}
	}
	return records, nil
}
