package llm

import "context"

// Purpose labels recorded with each model call.
const (
	PurposeChallengeGen   = "challenge-gen"
	PurposeChallengeBatch = "challenge-batch"
)

type purposeKey struct{}

// WithPurpose tags ctx so the logging layer can attribute the call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}
