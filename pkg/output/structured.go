package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/computerscienceiscool/llm-browser/pkg/protocol"
	"github.com/computerscienceiscool/llm-browser/pkg/scenario"
)

// JSON renders one indented JSON document per result
type JSON struct{}

func (JSON) Response(w io.Writer, cmd protocol.Command, resp protocol.Response) error {
	return writeJSON(w, viewResponse(cmd, resp))
}

func (JSON) Health(w io.Writer, bridgeURL string, h protocol.HealthStatus) error {
	return writeJSON(w, viewHealth(bridgeURL, h))
}

func (JSON) Report(w io.Writer, r *scenario.Report) error {
	return writeJSON(w, viewReport(r))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML renders one YAML document per result, separated by ---
type YAML struct{}

func (YAML) Response(w io.Writer, cmd protocol.Command, resp protocol.Response) error {
	return writeYAML(w, viewResponse(cmd, resp))
}

func (YAML) Health(w io.Writer, bridgeURL string, h protocol.HealthStatus) error {
	return writeYAML(w, viewHealth(bridgeURL, h))
}

func (YAML) Report(w io.Writer, r *scenario.Report) error {
	return writeYAML(w, viewReport(r))
}

func writeYAML(w io.Writer, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
