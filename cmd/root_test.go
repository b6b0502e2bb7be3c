package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adoq/adoq/filter"
)

func TestParseIntList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "single", input: "42", want: []int{42}},
		{name: "multiple with spaces", input: "1, 2,3", want: []int{1, 2, 3}},
		{name: "trailing comma", input: "7,8,", want: []int{7, 8}},
		{name: "not a number", input: "1,two", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntList(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitPaths(t *testing.T) {
	assert.Equal(t, []string{"/src/A.cs", "/src/B.cs"}, splitPaths("/src/A.cs, /src/B.cs"))
	assert.Equal(t, []string{"/one"}, splitPaths("/one,,"))
	assert.Empty(t, splitPaths(" , "))
}

func TestWriteError(t *testing.T) {
	t.Run("stderr gets a JSON error object", func(t *testing.T) {
		outputFile = ""
		var stdout, stderr bytes.Buffer

		writeError(&stdout, &stderr, errors.New("boom: it broke"))

		assert.JSONEq(t, `{"error":"boom: it broke"}`, stderr.String())
		assert.Empty(t, stdout.String(), "stdout stays quiet without --output-file")
	})

	t.Run("output-file echoes the failure on stdout", func(t *testing.T) {
		outputFile = "/tmp/result.json"
		defer func() { outputFile = "" }()
		var stdout, stderr bytes.Buffer

		writeError(&stdout, &stderr, errors.New("boom"))

		assert.JSONEq(t, `{"error":"boom"}`, stderr.String())
		assert.Equal(t, "ERROR: failed to write /tmp/result.json: boom\n", stdout.String())
	})
}

func TestApplyFilter(t *testing.T) {
	var err error
	filters, err = filter.NewRegistry(map[string]string{
		"active": `status == "active"`,
	})
	require.NoError(t, err)

	items := []json.RawMessage{
		json.RawMessage(`{"id":1,"status":"active"}`),
		json.RawMessage(`{"id":2,"status":"completed"}`),
		json.RawMessage(`{"id":3,"status":"active"}`),
	}

	t.Run("no filter passes everything through", func(t *testing.T) {
		got, err := applyFilter(items, "", "")
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("where expression", func(t *testing.T) {
		got, err := applyFilter(items, `id > 1`, "")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.JSONEq(t, `{"id":2,"status":"completed"}`, string(got[0]))
	})

	t.Run("preset", func(t *testing.T) {
		got, err := applyFilter(items, "", "active")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.JSONEq(t, `{"id":1,"status":"active"}`, string(got[0]))
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := applyFilter(items, "", "missing")
		assert.Error(t, err)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := applyFilter(items, "status ==", "")
		assert.Error(t, err)
	})
}
