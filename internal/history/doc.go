// Package history records the requests knxlink has sent and their outcomes.
//
// Each read or write becomes one Record in the request_history table of the
// SQLite database opened by the database package. Records are identified by
// a random UUID so several processes can share one file.
//
// Usage:
//
//	repo := history.NewSQLiteRepository(db.DB)
//	recent, err := repo.List(ctx, history.Filter{GroupAddress: "1/2/3", Limit: 10})
package history
