package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"photocontest/contracts/identity"
)

// actorFromRequest trusts the identity headers set by the upstream gateway.
func actorFromRequest(r *http.Request) identity.Actor {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		return identity.Anonymous()
	}
	if strings.EqualFold(strings.TrimSpace(r.Header.Get("X-User-Role")), "admin") {
		return identity.Admin(userID)
	}
	return identity.User(userID)
}

// decodeJSON decodes the request body into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	if r.Body == nil {
		if allowEmpty {
			return nil
		}
		return errors.New("request body must be valid JSON")
	}
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return errors.New("request body must be valid JSON")
	}
	return nil
}

func queryInt(query url.Values, key string) (int, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return value, nil
}

func pageParams(query url.Values) (int, int, error) {
	limit, err := queryInt(query, "limit")
	if err != nil {
		return 0, 0, err
	}
	offset, err := queryInt(query, "offset")
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
