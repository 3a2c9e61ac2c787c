package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_CorruptTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		column string
	}{
		{name: "started", column: "started_at"},
		{name: "finished", column: "finished_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewSQLiteStore(":memory:")
			require.NoError(t, err)
			defer store.Close()

			started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			require.NoError(t, store.Save(Record{
				RunID:      "run-1",
				Input:      "test.txt",
				Output:     "test-python.txt",
				Status:     StatusSucceeded,
				StartedAt:  started,
				FinishedAt: started.Add(time.Millisecond),
			}))

			_, err = store.db.Exec("UPDATE runs SET "+tt.column+" = 'yesterday' WHERE run_id = 'run-1'")
			require.NoError(t, err)

			_, err = store.Load("run-1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.column)

			_, err = store.Latest("test.txt")
			assert.Error(t, err)

			_, err = store.List(0)
			assert.Error(t, err)
		})
	}
}
