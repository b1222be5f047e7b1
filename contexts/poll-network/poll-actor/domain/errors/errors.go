package errors

import "errors"

var (
	ErrPollNotFound         = errors.New("poll chain not found")
	ErrPollClosed           = errors.New("poll is closed")
	ErrVotingAlreadyStarted = errors.New("cannot nominate after voting has started")
	ErrVotingNotStarted     = errors.New("voting has not started yet")
	ErrNotAParticipant      = errors.New("user is not a poll participant")
	ErrTooManyRankings      = errors.New("ranking exceeds votes per voter")
	ErrNotAdmin             = errors.New("only the poll admin may do this")
	ErrAlreadyClosed        = errors.New("poll is already closed")
)
