// Package identity carries the caller capability resolved by the transport.
// Operations receive it explicitly instead of reading ambient session state.
package identity

import "strings"

type Actor struct {
	UserID  string
	IsAdmin bool
}

func Anonymous() Actor {
	return Actor{}
}

func User(userID string) Actor {
	return Actor{UserID: strings.TrimSpace(userID)}
}

func Admin(userID string) Actor {
	return Actor{UserID: strings.TrimSpace(userID), IsAdmin: true}
}

func (a Actor) Authenticated() bool {
	return strings.TrimSpace(a.UserID) != ""
}

// Owns reports whether the actor is the given user.
func (a Actor) Owns(userID string) bool {
	return a.Authenticated() && strings.TrimSpace(a.UserID) == strings.TrimSpace(userID)
}
