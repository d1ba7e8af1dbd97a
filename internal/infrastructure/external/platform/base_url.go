package platform

import "strings"

// BaseURLs are the three roots the platform serves under
type BaseURLs struct {
	Root string // scheme://host[/prefix]
	API  string // Root + /api, hosts the auth endpoints
	V1   string // Root + /api/v1, hosts everything else
}

// NormalizeBaseURL derives the platform roots from a configured base URL,
// which may point at the host, at /api or at /api/v1.
func NormalizeBaseURL(raw string) BaseURLs {
	normalized := strings.TrimSuffix(strings.TrimSpace(raw), "/")

	switch {
	case strings.HasSuffix(normalized, "/api/v1"):
		api := strings.TrimSuffix(normalized, "/v1")
		return BaseURLs{
			Root: strings.TrimSuffix(api, "/api"),
			API:  api,
			V1:   normalized,
		}
	case strings.HasSuffix(normalized, "/api"):
		return BaseURLs{
			Root: strings.TrimSuffix(normalized, "/api"),
			API:  normalized,
			V1:   normalized + "/v1",
		}
	default:
		return BaseURLs{
			Root: normalized,
			API:  normalized + "/api",
			V1:   normalized + "/api/v1",
		}
	}
}
