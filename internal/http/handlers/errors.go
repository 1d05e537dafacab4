package handlers

import "errors"

var (
	errMissingProfile = errors.New("missing profile")
	errBadStart       = errors.New("start must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	errBadEnd         = errors.New("end must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	errBadLimit       = errors.New("limit must be a positive integer")
	errBadAmount      = errors.New("amount must be a number")
)
