package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Meta  RunMetadata `json:"meta"`
	Steps int         `json:"steps"`
	Run   *Run        `json:"run"`
}

func ExportJSON(w io.Writer, meta RunMetadata, run *Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: meta, Steps: run.Len(), Run: run})
}

func ExportJSONFile(path string, meta RunMetadata, run *Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, run)
}
