package therapy

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Archive layout. Clients that cache packs offline rely on these names.
const (
	archiveModuleFile = "module.json"
	archiveStepsFile  = "steps.json"
	archiveReadmeFile = "README.txt"
)

type archiveModule struct {
	SID         string `json:"sid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ModuleType  string `json:"module_type"`
	AgeRangeMin *int   `json:"age_range_min"`
	AgeRangeMax *int   `json:"age_range_max"`
	Version     string `json:"version"`
	StepCount   int    `json:"step_count"`
	CreatedAt   string `json:"created_at"`
}

// BuildArchive renders a module into the offline pack layout: module
// metadata, the ordered steps, and a human-readable README. The output is
// deterministic apart from the module's own timestamps.
func BuildArchive(module *Module, version string) ([]byte, error) {
	if module == nil {
		return nil, fmt.Errorf("module is required")
	}

	steps := module.Steps()
	for i := range steps {
		if steps[i].MediaReferences == nil {
			steps[i].MediaReferences = []string{}
		}
	}

	meta := archiveModule{
		SID:         module.SID(),
		Title:       module.Title(),
		Description: module.Description(),
		ModuleType:  module.ModuleType(),
		AgeRangeMin: module.AgeRangeMin(),
		AgeRangeMax: module.AgeRangeMax(),
		Version:     version,
		StepCount:   len(steps),
		CreatedAt:   module.CreatedAt().Format(time.RFC3339),
	}

	moduleJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode module metadata: %w", err)
	}
	stepsJSON, err := json.MarshalIndent(steps, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode steps: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct {
		name    string
		content []byte
	}{
		{archiveModuleFile, moduleJSON},
		{archiveStepsFile, stepsJSON},
		{archiveReadmeFile, []byte(readmeText(module, len(steps)))},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", f.name, err)
		}
		if _, err := w.Write(f.content); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}

// ValidateArchive checks that content is a well-formed pack archive:
// a readable ZIP carrying valid module.json and steps.json entries.
func ValidateArchive(content []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return fmt.Errorf("not a valid archive: %w", err)
	}

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}

	moduleEntry, ok := entries[archiveModuleFile]
	if !ok {
		return fmt.Errorf("missing required file: %s", archiveModuleFile)
	}
	stepsEntry, ok := entries[archiveStepsFile]
	if !ok {
		return fmt.Errorf("missing required file: %s", archiveStepsFile)
	}

	var meta archiveModule
	if err := decodeArchiveEntry(moduleEntry, &meta); err != nil {
		return fmt.Errorf("invalid %s: %w", archiveModuleFile, err)
	}
	if meta.Title == "" || meta.ModuleType == "" {
		return fmt.Errorf("invalid %s: title and module_type are required", archiveModuleFile)
	}

	var steps []Step
	if err := decodeArchiveEntry(stepsEntry, &steps); err != nil {
		return fmt.Errorf("invalid %s: %w", archiveStepsFile, err)
	}

	return nil
}

func decodeArchiveEntry(entry *zip.File, dst any) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return json.NewDecoder(rc).Decode(dst)
}

func readmeText(module *Module, stepCount int) string {
	ageBound := func(v *int) string {
		if v == nil {
			return "N/A"
		}
		return fmt.Sprintf("%d", *v)
	}
	return fmt.Sprintf(`Therapy Module: %s
================================

Description: %s
Type: %s
Age Range: %s - %s months
Steps: %d

This is an offline therapy module pack.

Files:
- module.json: Module metadata
- steps.json: Step-by-step therapy instructions
- README.txt: This file

Media files referenced in steps.json should be downloaded separately
using the media_references URLs.
`, module.Title(), module.Description(), module.ModuleType(),
		ageBound(module.AgeRangeMin()), ageBound(module.AgeRangeMax()), stepCount)
}
