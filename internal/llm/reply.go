package llm

import (
	"net/http"
	"strconv"
	"time"
)

// reply turns a provider's raw answer into a Response. A truncated answer
// is never handed back as a success: half a JSON document is useless to
// every caller.
func reply(text string, stop StopReason, model string, usage Usage) (*Response, error) {
	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Text: text}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Text:       text,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// statusError classifies a failed call by its HTTP status. Anything that is
// not a rate limit counts as the provider being unavailable.
func statusError(status int, header http.Header, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{RetryAfter: retryAfter(header), Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// retryAfter reads a Retry-After header given in seconds. Dates and
// missing headers yield zero.
func retryAfter(header http.Header) time.Duration {
	if header == nil {
		return 0
	}
	secs, err := strconv.Atoi(header.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// resolveModel maps a friendly model name to a provider model ID.
// Unknown names pass through so direct model IDs keep working.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
