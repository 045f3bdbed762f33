// Package competitionservice owns the competition catalog of the
// photo-contest context: competitions, their lifecycle
// (draft, open, voting, closed) and the categories photos are entered into.
//
// Submission, voting and moderation read the catalog through their own
// projections over the shared schema; this module is the only writer.
package competitionservice
