// Package moderationservice reviews submitted photos and handles abuse
// reports.
//
// Photos move from pending to approved or rejected exactly once; admins may
// hard delete in any state. Every transition is a conditional write on the
// current status so concurrent moderators cannot both win.
package moderationservice
