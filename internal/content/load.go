package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML tuning file over the defaults. An empty path or a
// missing file yields the defaults; a present but unparsable file is an
// error, since silently ignoring operator config would be worse than
// failing at startup.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read content config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse content config: %w", err)
	}
	if len(cfg.Levels) == 0 || len(cfg.Challenges) == 0 {
		return Config{}, fmt.Errorf("content config %s: levels and challenges must not be empty", path)
	}
	return cfg, nil
}
