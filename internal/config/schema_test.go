package config

import (
	"encoding/json"
	"testing"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	if err != nil {
		t.Fatalf("GenerateSchema failed: %v", err)
	}

	var schema struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
		Defs       map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"$defs"`
	}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}

	if schema.Title != "Homegrid Configuration" {
		t.Errorf("unexpected title %q", schema.Title)
	}
	for _, section := range []string{"grid", "storage", "ui", "log"} {
		if _, ok := schema.Properties[section]; !ok {
			t.Errorf("schema missing section %q", section)
		}
	}
	if len(schema.Required) != 0 {
		t.Errorf("expected no required keys, got %v", schema.Required)
	}

	grid, ok := schema.Defs["GridConfig"]
	if !ok {
		t.Fatal("schema missing GridConfig definition")
	}
	for _, key := range []string{"columns", "long_press_ms", "drag_threshold_px", "cell_width"} {
		if _, ok := grid.Properties[key]; !ok {
			t.Errorf("grid definition missing %q", key)
		}
	}
}
