package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/reflux/internal/journal"
)

// openTestJournal creates a throwaway journal in a temp dir.
func openTestJournal(t *testing.T) *journal.Journal {
	t.Helper()
	j, err := journal.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "journal.Open failed")
	t.Cleanup(func() { j.Close() })
	return j
}
