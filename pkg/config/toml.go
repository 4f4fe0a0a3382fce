package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// tomlParser is a koanf parser for the config file. It rejects keys that
// [Config] does not declare.
type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]any, error) {
	md, err := toml.Decode(string(b), &Config{})
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	var out map[string]any
	if _, err := toml.Decode(string(b), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(m map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toMap flattens c into the generic form koanf layers over.
func (c *Config) toMap() (map[string]any, error) {
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return nil, err
	}
	return tomlParser{}.Unmarshal(buf.Bytes())
}
