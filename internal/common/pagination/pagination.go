// Package pagination parses page/limit query parameters and builds page
// metadata for list endpoints.
package pagination

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
)

// Params is a validated page request.
type Params struct {
	Page  int // 1-based
	Limit int
}

// Config holds the defaults and bounds applied by ParseQueryParams.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// Metadata describes the page returned to the client.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv reads PAGINATION_DEFAULT_LIMIT and PAGINATION_MAX_LIMIT.
// Values that would make the config inconsistent are ignored.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	if v := getEnvAsInt("PAGINATION_MAX_LIMIT", cfg.MaxLimit); v > 0 {
		cfg.MaxLimit = v
	}
	if v := getEnvAsInt("PAGINATION_DEFAULT_LIMIT", cfg.DefaultLimit); v > 0 && v <= cfg.MaxLimit {
		cfg.DefaultLimit = v
	} else if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return cfg
}

func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}

// ParseQueryParams reads page and limit from the query string.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns at least 1, so an empty result is page 1 of 1.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NewMetadata builds the metadata for params given the total item count.
func NewMetadata(params Params, total int64) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}
