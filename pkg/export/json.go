package export

import (
	"encoding/json"
	"os"

	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/validator"
)

// Bundle is the complete exportable record for one solved layout: the
// layout itself plus its independent validation report, if one was run.
type Bundle struct {
	Layout layout.Layout     `json:"layout"`
	Report *validator.Report `json:"validation_report,omitempty"`
}

// ExportJSON serializes a bundle to indented JSON for human inspection.
func ExportJSON(b Bundle) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// ExportJSONCompact serializes a bundle to compact JSON suitable for
// transmission over the message bus's `{topic}.results` channel.
func ExportJSONCompact(b Bundle) ([]byte, error) {
	return json.Marshal(b)
}

// SaveJSONToFile exports a bundle to an indented JSON file (0644).
func SaveJSONToFile(b Bundle, path string) error {
	data, err := ExportJSON(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
