package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// SetLevel applies level name from config to the global logger
func SetLevel(name string) error {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", name, err)
	}

	zerolog.SetGlobalLevel(level)

	return nil
}
