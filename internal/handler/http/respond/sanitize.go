package respond

import "regexp"

type maskRule struct {
	pattern *regexp.Regexp
	repl    string
}

// maskRules are applied in order; sk-ant- must run before the generic sk- rule
// and bearer headers before bare JWTs.
var maskRules = []maskRule{
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`), "sk-ant-****"},
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`), "sk-****"},
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.=]+`), "Bearer ****"},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`), "<jwt>"},
	{regexp.MustCompile(`(?i)([?&](?:api_?key|key|token|access_token|signature)=)[^&\s"]+`), "${1}****"},
	{regexp.MustCompile(`://([^:/]+):([^@]+)@`), "://$1:****@"},
}

// SanitizeError returns err's message with API keys, tokens, secret query
// parameters and DSN passwords masked. It is used for anything that reaches a
// log line or a response body.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, r := range maskRules {
		msg = r.pattern.ReplaceAllString(msg, r.repl)
	}
	return msg
}
