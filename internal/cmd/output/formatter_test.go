package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sirenrich/pkg/reconciler"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "json", "yaml", "JSON", ""} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("yaml"))
	assert.Equal(t, FormatJSON, DetectFormat("JSON"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{Indent: "  "}

	summary := &reconciler.Summary{Rows: 3, Found: 2, AddressMismatches: 1}
	require.NoError(t, f.Format(&buf, summary))

	var decoded reconciler.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.Rows)
	assert.Equal(t, 1, decoded.AddressMismatches)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}

	require.NoError(t, f.Format(&buf, &reconciler.Summary{Rows: 3}))
	assert.Contains(t, buf.String(), "rows: 3")
}

func TestTableFormatterSummary(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	summary := summaryView{&reconciler.Summary{Rows: 5, Found: 4, OutputPath: "out.xlsx"}}
	require.NoError(t, f.Format(&buf, summary))

	out := buf.String()
	assert.Contains(t, out, "Rows")
	assert.Contains(t, out, "5")
	assert.Contains(t, out, "out.xlsx")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	require.NoError(t, f.Format(&buf, map[string]int{"rows": 1}))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))
}
