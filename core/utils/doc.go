// Package utils provides common utility functions for the scorebook application.
// It centers on value conversion helpers that normalize the differing Go types
// the sqlite and mysql drivers return for the same column, so that row
// comparison and score aggregation never have to guess at driver behavior.
package utils
