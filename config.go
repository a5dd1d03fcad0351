package atlas

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const API_BASE_URL = "https://atlas.infegy.com/api/v2/"

// 🔒 AUTH
// One key for the whole process, set before the first request.
type apiKeyManager struct {
	key     string
	baseUrl string
	mu      sync.RWMutex
}

var apiKey = apiKeyManager{baseUrl: API_BASE_URL}

func NewAPIKeyManager(key string) {
	apiKey = apiKeyManager{key: key, baseUrl: API_BASE_URL}
}

func GetKey() string {
	apiKey.mu.RLock()
	defer apiKey.mu.RUnlock()
	return apiKey.key
}

func SetKey(key string) {
	apiKey.mu.Lock()
	defer apiKey.mu.Unlock()
	apiKey.key = key
}

// SetAPIBaseUrl points every request at another host. A trailing slash is
// added when missing, endpoints are appended as the last path segment.
func SetAPIBaseUrl(url string) {
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	apiKey.mu.Lock()
	defer apiKey.mu.Unlock()
	apiKey.baseUrl = url
}

func GetAPIBaseUrl() string {
	apiKey.mu.RLock()
	defer apiKey.mu.RUnlock()
	return apiKey.baseUrl
}

// LoadKeyFromEnv sets the API key from the environment variable envVar.
// When files are given they are loaded first with godotenv; variables already
// present in the environment win over the files.
//
// Usage:
//
//	atlas.LoadKeyFromEnv("ATLAS_API_KEY", ".env")
func LoadKeyFromEnv(envVar string, files ...string) error {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return &ConfigurationError{Message: fmt.Sprintf("load %v: %v", files, err)}
		}
	}
	key := strings.TrimSpace(os.Getenv(envVar))
	if key == "" {
		return &ConfigurationError{Message: fmt.Sprintf("environment variable %s is empty", envVar)}
	}
	SetKey(key)
	return nil
}
