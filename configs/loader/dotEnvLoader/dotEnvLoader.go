package dotEnvLoader

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvLoader merges an optional .env file into the process environment
// and returns the result. A missing .env is not an error.
type DotEnvLoader struct {
	Path string
}

func (l DotEnvLoader) Load() (map[string]string, error) {
	path := l.Path
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err == nil {
		if err = godotenv.Load(path); err != nil {
			return nil, err
		}
	}

	envs := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envs[k] = v
		}
	}
	return envs, nil
}
