package motion

import (
	"bytes"
	"encoding/json"
)

type jsonReportOut struct {
	CreatingLibrary jsonLibraryOut  `json:"creatingLibrary"`
	Report          StructureReport `json:"report"`
}

type jsonLibraryOut struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

// RenderJSON renders a structure report as indented JSON with a
// creatingLibrary header identifying the producing tool.
func RenderJSON(report StructureReport) string {
	payload := jsonReportOut{
		CreatingLibrary: jsonLibraryOut{
			Name:    AppName,
			Version: FormatVersion(AppVersion),
			URL:     AppURL,
		},
		Report: report,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "{}\n"
	}
	return buf.String()
}
