package config

import (
	"errors"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding the environment. A missing file is not an error.
func LoadDotEnv(logger *log.Logger, files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		if logger != nil {
			logger.Debug("loaded environment file", "path", f)
		}
	}
	return nil
}
