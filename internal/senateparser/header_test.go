package senateparser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunlight/senate-csv/internal/parsererror"
)

func TestLocateHeader(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		wantIndex int
		wantFound bool
	}{
		{name: "single header", lines: []string{"top", "", headerLine, "data"}, wantIndex: 2, wantFound: true},
		{name: "header at end of line", lines: []string{"   PAYEE   START   END"}, wantIndex: 0, wantFound: true},
		{name: "no header", lines: []string{"SUMMARY", "   TOTAL   12.00"}, wantFound: false},
		{name: "empty page", lines: nil, wantFound: false},
		{name: "words glued together", lines: []string{"   STARTEND   "}, wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, found, err := LocateHeader(3, tt.lines)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantIndex, index)
		})
	}
}

func TestLocateHeader_MultipleHeadersIsFatal(t *testing.T) {
	_, found, err := LocateHeader(42, []string{headerLine, "data", headerLine, headerLine})
	require.Error(t, err)
	assert.False(t, found)

	var structural *parsererror.StructuralError
	require.True(t, errors.As(err, &structural))
	assert.Equal(t, 42, structural.Page)
	assert.Equal(t, 3, structural.Count)
	assert.Contains(t, err.Error(), "page 42")
}
