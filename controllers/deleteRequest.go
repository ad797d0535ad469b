package controllers

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
)

// deleteRequest is one of deleteOne or deleteAllForUser.
type deleteRequest interface {
	isDeleteRequest()
}

type deleteOne struct {
	id uint
}

type deleteAllForUser struct {
	userIdentifier string
}

func (deleteOne) isDeleteRequest()        {}
func (deleteAllForUser) isDeleteRequest() {}

var errInvalidDeleteRequest = errors.New("invalid delete request")

// bindDeleteRequest accepts exactly one of {idField: <id>} or
// {"user_identifier": <user>}. Null members count as absent.
func bindDeleteRequest(ctx *gin.Context, idField string) (deleteRequest, error) {
	raw, err := ctx.GetRawData()
	if err != nil {
		return nil, err
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errInvalidDeleteRequest
	}

	rawID, hasID := present(body, idField)
	rawUser, hasUser := present(body, "user_identifier")

	switch {
	case hasID && !hasUser:
		var id uint
		if err := json.Unmarshal(rawID, &id); err != nil || id == 0 {
			return nil, errInvalidDeleteRequest
		}
		return deleteOne{id: id}, nil
	case hasUser && !hasID:
		var user string
		if err := json.Unmarshal(rawUser, &user); err != nil || user == "" {
			return nil, errInvalidDeleteRequest
		}
		return deleteAllForUser{userIdentifier: user}, nil
	default:
		return nil, errInvalidDeleteRequest
	}
}

func present(body map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	value, ok := body[key]
	if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return nil, false
	}
	return value, true
}
