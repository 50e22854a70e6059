package respond

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "anthropic key", err: errors.New("auth failed for sk-ant-api03-abcDEF_123"), want: "auth failed for sk-ant-****"},
		{name: "openai key", err: errors.New("bad key sk-abcdefghijklmnop"), want: "bad key sk-****"},
		{name: "bearer token", err: errors.New("header Bearer eyJhbGciOi.xyz.abc rejected"), want: "header Bearer **** rejected"},
		{name: "dsn password", err: errors.New("dial postgres://app:s3cret@db:5432/summaries"), want: "dial postgres://app:****@db:5432/summaries"},
		{name: "bare jwt", err: errors.New("token eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJhQGIuY28ifQ.c2ln expired"), want: "token <jwt> expired"},
		{name: "secret query parameter", err: errors.New(`Get "https://example.com/a?id=7&api_key=abc123&x=1": timeout`), want: `Get "https://example.com/a?id=7&api_key=****&x=1": timeout`},
		{name: "sqlite path untouched", err: errors.New("open sqlite://data/summaries.db: permission denied"), want: "open sqlite://data/summaries.db: permission denied"},
		{name: "plain message", err: errors.New("nothing to hide"), want: "nothing to hide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(tt.err))
		})
	}
}
