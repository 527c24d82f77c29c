package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrOpenStore       = errors.New("open store failed")
	ErrListRoster      = errors.New("list roster failed")
	ErrAddRoster       = errors.New("add roster row failed")
	ErrReplaceSchedule = errors.New("replace schedule failed")
	ErrReadSchedule    = errors.New("read schedule failed")
)
