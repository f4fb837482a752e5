package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sirenrich/pkg/errors"
)

func TestNew(t *testing.T) {
	application, err := New("1.2.3", "abc123", "2026-08-30")
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", application.Version())
	assert.Equal(t, "abc123", application.Commit())
	assert.Equal(t, "2026-08-30", application.Date())
	assert.NotNil(t, application.Config())
	assert.NotNil(t, application.Logger())
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	application, err := New("dev", "", "")
	require.NoError(t, err)

	err = application.Execute(context.Background(), []string{"--format", "xml"})
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}

func TestExecuteMissingInputIsConfigError(t *testing.T) {
	application, err := New("dev", "", "")
	require.NoError(t, err)

	err = application.Execute(context.Background(), []string{
		"--input", "does-not-exist.xlsx",
		"--output", t.TempDir() + "/out.xlsx",
		"--quiet",
	})
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}
