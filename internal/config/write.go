package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sourcli/sour/internal/errors"
)

// fileHeader is prepended to generated config files.
const fileHeader = `# sour configuration
# Docs: https://github.com/sourcli/sour#configuration
`

// WriteDefault writes a starter config file to path. Refuses to overwrite
// an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+path,
				"Use --force to overwrite it")
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot serialize default config", "")
	}

	out := append([]byte(fileHeader), data...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write config file: "+path,
			"Check directory permissions")
	}
	return nil
}
