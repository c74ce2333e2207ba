package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLogger_GetLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l := NewIsolatedLogger(path)

	l.Info("review", "stage decided", map[string]interface{}{"submissionId": "a1", "stage": "pbp_review"})
	l.Info("review", "stage decided", map[string]interface{}{"submissionId": "b2", "stage": "procurement_review"})
	l.Warn("review", "stage rejected", map[string]interface{}{"submissionId": "a1"})
	require.NoError(t, l.Sync())

	all, err := l.GetLogs(LogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "stage rejected", all[0].Message, "newest first")
	assert.Equal(t, "review", all[0].Module)
	assert.NotEmpty(t, all[0].Id)

	forA1, err := l.GetLogs(LogFilter{SubmissionId: "a1"})
	require.NoError(t, err)
	assert.Len(t, forA1, 2)

	warns, err := l.GetLogs(LogFilter{Level: "WARN"})
	require.NoError(t, err)
	assert.Len(t, warns, 1)

	paged, err := l.GetLogs(LogFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "b2", paged[0].Details["submissionId"])

	beyond, err := l.GetLogs(LogFilter{Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestGetLogs_MissingFile(t *testing.T) {
	l := NewIsolatedLogger(filepath.Join(t.TempDir(), "never-written.log"))
	entries, err := l.GetLogs(LogFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NotPanics(t, func() {
		NewNopLogger().Error("x", "y", nil)
	})
}
