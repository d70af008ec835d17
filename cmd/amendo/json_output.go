package main

import (
	"bytes"
	"encoding/json"
	"io"

	"amendo/internal/services/amendo"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeOverviewJSON prints the overview body as the server sent it, indented,
// so key order survives. Decoded fields are the fallback when no body was kept.
func writeOverviewJSON(w io.Writer, overview amendo.Overview) error {
	if len(bytes.TrimSpace(overview.Raw)) == 0 {
		return writeJSON(w, overview.Fields)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, overview.Raw, "", "  "); err != nil {
		return writeJSON(w, overview.Fields)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
