// SPDX-License-Identifier: Apache-2.0

package service

import (
	"errors"
	"strings"

	"github.com/forecastflow/forecastflow/internal/adapter"
	"github.com/forecastflow/forecastflow/internal/app"
	"github.com/forecastflow/forecastflow/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service
// business error.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgUsernameTaken:
			return store.ErrUsernameTaken
		case app.MsgInvalidDataProvided:
			return ErrInvalidDataProvided
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidUsernamePassword:
			return ErrInvalidCredentials
		case app.MsgTokenIsExpiredOrInvalid:
			return ErrTokenIsExpiredOrInvalid
		}
		return ErrTokenIsExpiredOrInvalid

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgUserNotFound:
			return store.ErrNoUserFound
		}
		return store.ErrTaskNotFound
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>".
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
