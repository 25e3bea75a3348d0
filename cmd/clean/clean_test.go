package clean

import (
	"context"
	"path/filepath"
	"testing"

	"sunlight/senate-csv/internal/common"
	"sunlight/senate-csv/internal/config"
	"sunlight/senate-csv/internal/container"
	"sunlight/senate-csv/internal/models"

	cmdcommon "sunlight/senate-csv/cmd/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCommand_Metadata(t *testing.T) {
	assert.Equal(t, "clean", Cmd.Use)
	in := Cmd.Flags().Lookup("input")
	require.NotNil(t, in)
	assert.Equal(t, cmdcommon.RecordsFile, in.DefValue)
	out := Cmd.Flags().Lookup("output")
	require.NotNil(t, out)
	assert.Equal(t, cmdcommon.CleanedFile, out.DefValue)
	assert.NotNil(t, Cmd.Flags().Lookup("no-banner"))
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Bioguide.Enabled = false
	cfg.CSV.Delimiter = ";"
	c, err := container.NewContainerWithLogger(cfg, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	raw := filepath.Join(dir, cmdcommon.RecordsFile)
	rows := []models.RawRow{
		{Office: "SENATOR JANE DOE Funding Year 2016", Kind: "expense", PageNum: 4, DatePosted: "02/30/2016", Amount: "1,250.00"},
		{Office: "COMMITTEE ON FINANCE FISCAL YEAR 2015", Kind: "salary", PageNum: 5, Amount: "$3,200.00"},
	}
	require.NoError(t, common.WriteCSVFile(rows, raw, common.CSVOptions{Delimiter: ';'}, nil))

	out := filepath.Join(dir, cmdcommon.CleanedFile)
	stats, err := Run(context.Background(), c, cmdcommon.CleanOptions{Input: raw, Output: out, SourceDoc: "114sdoc7"}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 1, stats.SenatorRows)
	assert.Equal(t, 1, stats.InvalidDates)

	cleaned, err := common.ReadCleanRows(out, ';', nil)
	require.NoError(t, err)
	require.Len(t, cleaned, 2)
	assert.Equal(t, "1250.00", cleaned[0].AmountValue)
	assert.Equal(t, "02/30/2016", cleaned[0].DatePosted)
	assert.Equal(t, 1, cleaned[1].SalaryFlag)
	assert.Equal(t, "3200.00", cleaned[1].AmountValue)
}
