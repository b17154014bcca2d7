package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RuntimeGlobal is the window property the browser runtime reads its
// settings from.
const RuntimeGlobal = "diagramZoomConfig"

// RuntimeJSON encodes the settings the browser runtime needs. Site and
// server settings are left out; durations are nanoseconds.
func (c *Config) RuntimeJSON() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding runtime config: %w", err)
	}
	return data, nil
}

// RuntimeScript returns a script assigning RuntimeJSON to
// window.diagramZoomConfig.
func (c *Config) RuntimeScript() ([]byte, error) {
	data, err := c.RuntimeJSON()
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "window.%s = %s;\n", RuntimeGlobal, data)
	return b.Bytes(), nil
}
