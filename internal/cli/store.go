package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = ".vindecode"
	apiKeyKey  = "api_key"
	envPrefix  = "VINDECODE"
)

// keyStore persists the API-Ninjas key in a YAML file. VINDECODE_API_KEY
// in the environment takes precedence over the file.
type keyStore struct {
	v    *viper.Viper
	path string
}

func openKeyStore(path string) (*keyStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home directory: %w", err)
		}
		path = filepath.Join(home, configName+".yaml")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	return &keyStore{v: v, path: path}, nil
}

func (s *keyStore) APIKey() string {
	return strings.TrimSpace(s.v.GetString(apiKeyKey))
}

func (s *keyStore) SetAPIKey(key string) error {
	s.v.Set(apiKeyKey, strings.TrimSpace(key))
	return s.write()
}

func (s *keyStore) Clear() error {
	s.v.Set(apiKeyKey, "")
	return s.write()
}

func (s *keyStore) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return os.Chmod(s.path, 0o600)
}

// maskKey hides all but the last four characters.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
