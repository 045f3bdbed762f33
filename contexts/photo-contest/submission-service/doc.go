// Package submissionservice implements photo submission inside the
// photo-contest context.
//
// It validates uploads against competition/category state, enforces the
// per-user category quota with a storage-level slot constraint, and owns the
// owner-side edit and delete rules that apply while a photo is still pending
// moderation.
package submissionservice
