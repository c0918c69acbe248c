package service

import "errors"

// Sentinel errors returned by the league service.
var (
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrNotEditing      = errors.New("no edit in progress")
	ErrMatchNotFound   = errors.New("match not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrNoTeamSelected  = errors.New("no team selected")
	ErrPersist         = errors.New("preference not persisted")
)
