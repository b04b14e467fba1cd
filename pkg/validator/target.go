package validator

import (
	"net/http"
	"net/url"
	"strings"
)

// ValidateBaseURL accepts absolute http and https URLs with a host.
// Query strings and fragments are rejected since target paths get appended.
func ValidateBaseURL(raw string) bool {
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != "" && u.RawQuery == "" && u.Fragment == ""
}

// ValidatePath accepts non-empty paths such as "/" or "/webhook-debug".
func ValidatePath(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return false
	}

	// Полный URL вместо пути
	if strings.Contains(path, "://") {
		return false
	}

	return !strings.ContainsAny(path, " \t\n")
}

func ValidateMethod(method string) bool {
	validMethods := map[string]bool{
		http.MethodGet:     true,
		http.MethodHead:    true,
		http.MethodPost:    true,
		http.MethodPut:     true,
		http.MethodPatch:   true,
		http.MethodDelete:  true,
		http.MethodOptions: true,
	}

	// Метод должен быть в верхнем регистре
	return validMethods[method]
}
