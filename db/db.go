package db

import (
	"arber/types"
)

// Database is the attempt-history sink. Writes are best-effort: the
// trading pipeline never blocks on, or fails because of, history.
type Database interface {
	Close() error
	EnsureDatabaseExists() error
	CreateTables() error
	DropTables() error

	InsertArbAttempts(attempts types.ArbAttempts) error

	QueryRecentAttempts(limit uint) (types.ArbAttempts, error)
	QueryAttemptByExecutionId(executionId string) (*types.ArbAttempt, error)
}
