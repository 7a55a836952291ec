package form

import "context"

type submissionKey struct{}

// WithSubmissionID attaches a submission id to ctx.
func WithSubmissionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, submissionKey{}, id)
}

// SubmissionID returns the id of the submission being delivered, if any.
func SubmissionID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(submissionKey{}).(string)
	return id
}
