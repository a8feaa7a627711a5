package domain

import "errors"

// Expected failure conditions. Every one maps to a distinct, stable response
// so callers can tell "room missing" from "time conflict" from "bad format"
// programmatically.
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:mm (e.g. 14:00)")
	ErrTimeConflict      = errors.New("an existing reservation is within 30 minutes of the requested time")
	ErrNoReservations    = errors.New("no rooms are reserved")

	ErrInvalidInput = errors.New("invalid input")

	ErrDuplicateLogin = errors.New("login already registered")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnknownLogin   = errors.New("login not registered")
	ErrAuthentication = errors.New("invalid login or password")
)
