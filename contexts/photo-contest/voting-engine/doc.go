// Package votingengine implements community voting inside the photo-contest
// context.
//
// One vote per user per approved photo, never on one's own photo. Vote
// uniqueness is enforced by the store; the eligibility rule is defined once in
// the domain and reused by every read that reports whether a user can vote.
// Vote counts are always recomputed from the votes table.
package votingengine
