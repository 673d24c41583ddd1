package wallet

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultListPath is read when no config path is given
	DefaultListPath = "wallets.yaml"
)

// ErrConfig is returned when the wallet list cannot be loaded
var ErrConfig = errors.New("config error")

// listFile mirrors the wallets.yaml layout. Wallets is a pointer so a
// missing key can be told apart from an empty list.
type listFile struct {
	Wallets *[]string `yaml:"wallets"`
}

// LoadList reads the wallet identifiers stored under the wallets key of the
// YAML file at path
func LoadList(path string, logger *slog.Logger) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrConfig, path, err)
	}
	defer f.Close()

	var data listFile
	if err := yaml.NewDecoder(f).Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", ErrConfig, path)
		}
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrConfig, path, err)
	}

	if data.Wallets == nil {
		return nil, fmt.Errorf("%w: %s has no wallets key", ErrConfig, path)
	}

	wallets := make([]string, len(*data.Wallets))
	copy(wallets, *data.Wallets)

	if logger != nil {
		logger.Info("loaded wallets", "path", path, "wallets", wallets)
	}

	return wallets, nil
}
