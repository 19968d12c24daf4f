// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// ForecastFlow server handlers and the client error mapper.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies to describe the outcome of an operation. Keeping them
// in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidUsernamePassword is returned on login failure. The wording is
	// identical for an unknown username and a wrong password so that the
	// response does not reveal which accounts exist.
	MsgInvalidUsernamePassword = "Invalid username or password."

	// MsgUsernameTaken is returned when a registration attempt is rejected
	// because the requested username is already in use.
	MsgUsernameTaken = "Username is already taken."

	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "Invalid data provided."

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "Token is expired or invalid."

	// MsgTaskNotFound is returned when the requested task does not exist or
	// belongs to a different user. The two cases are deliberately
	// indistinguishable.
	MsgTaskNotFound = "Task not found."

	// MsgUserNotFound is returned when the requested user record does not
	// exist.
	MsgUserNotFound = "User not found."

	// MsgRegistered is returned when a new account was created successfully.
	MsgRegistered = "Registration successful."

	// MsgLoggedOut is returned by the logout endpoint.
	MsgLoggedOut = "Logged out."

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error."
)
