package services

import "errors"

// Shared error taxonomy. NotFound, validation, and state-conflict errors are
// expected outcomes returned to the caller for user-facing display; anything
// else is an upstream failure and propagates as-is.
var (
	// Not found
	ErrTeamNotFound       = errors.New("team not found")
	ErrSeriesNotFound     = errors.New("no series found for team")
	ErrTournamentNotFound = errors.New("tournament not found")

	// Validation
	ErrInvalidSeed            = errors.New("seed must be a positive number no greater than the team count")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrTeamNameTaken          = errors.New("team name is already taken")
	ErrTeamSizeInvalid        = errors.New("a team must have exactly 3 players")
	ErrPlayerAlreadyRostered  = errors.New("player is already registered on a team")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrTournamentNameTaken    = errors.New("tournament name is already taken")
	ErrInvalidStartTime       = errors.New("invalid tournament start time")

	// State conflicts
	ErrPriorGameUnconfirmed = errors.New("previous game has not been confirmed yet")
	ErrNothingToReport      = errors.New("there are no games left to report")
	ErrNoMatchReported      = errors.New("no game is awaiting confirmation")
	ErrSelfConfirmation     = errors.New("the reporting team cannot confirm its own report")
	ErrTeamsNotSeeded       = errors.New("every team must have a seed before the round can start")
	ErrRoundNotConfirmed    = errors.New("all games must be confirmed before the next round can start")

	// Auth
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
)
