package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:8080/api"
	tokenFileName = ".tvplus_token"
	apiURLEnv     = "TVPLUS_API_URL"
	tokenFileEnv  = "TVPLUS_TOKEN_FILE"
)

// ErrNotLoggedIn is returned when no token has been saved yet.
var ErrNotLoggedIn = errors.New("not logged in: run `tvplus auth login` first")

// APIURL returns the base URL for the API, without a trailing slash.
// It can be overridden with the TVPLUS_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv(apiURLEnv); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// TokenPath is ~/.tvplus_token unless TVPLUS_TOKEN_FILE points elsewhere.
func TokenPath() string {
	if v := os.Getenv(tokenFileEnv); v != "" {
		return v
	}
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}

// SaveToken stores the bearer token readable only by the current user.
func SaveToken(token string) error {
	return os.WriteFile(TokenPath(), []byte(token), 0600)
}

// ReadToken returns the saved token or ErrNotLoggedIn.
func ReadToken() (string, error) {
	data, err := os.ReadFile(TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// ClearToken removes the saved token. It reports false when there was none.
func ClearToken() (bool, error) {
	err := os.Remove(TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
