package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/flapmsg/internal/errors"
)

const (
	// EnvServiceAddress names the environment variable holding the service address
	EnvServiceAddress = "FLAPMSG_SERVICE_ADDRESS"

	// APISuffix is appended to the service address to form the API base
	APISuffix = "/api"
)

// LoadDotEnv loads variables from a .env file without overriding the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ResolveServiceAddress picks the service address by precedence:
// flag, then environment, then config file, then the built-in default.
func ResolveServiceAddress(flagValue string, cfg Config) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(EnvServiceAddress)); v != "" {
		return v
	}
	if v := strings.TrimSpace(cfg.ServiceAddress); v != "" {
		return v
	}
	return DefaultServiceAddress
}

// APIBase validates a service address and derives the API base from it
func APIBase(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", apierrors.ErrEmptyAddress
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("invalid service address %q: %w", address, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid service address %q: scheme must be http or https", address)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid service address %q: missing host", address)
	}

	return strings.TrimRight(address, "/") + APISuffix, nil
}
