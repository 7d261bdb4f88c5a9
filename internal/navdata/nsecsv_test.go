package navdata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const niftyCSV = `Date,Open,High,Low,Close
02-01-2023,18100.00,18200.00,18050.00,"18,150.55"
03-01-2023,18150.00,18300.00,18100.00,"18,250.10"
`

func TestNSECSVLoaderParsesIndexFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "NIFTY 50_Historical_PR_01012023to31122023.csv"), niftyCSV)

	loader, err := NewNSECSVLoader(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"NIFTY 50"}, loader.ListAvailable())

	series, err := loader.LoadNavData("NIFTY 50")
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())
	nav, ok := series.NavOn(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.InDelta(t, 18150.55, nav, 1e-9, "comma separators should be stripped")
}

func TestNSECSVLoaderPrefersTotalReturnIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "NIFTY 50_Historical_PR_x.csv"),
		"Date,Close\n02-01-2023,100\n")
	writeFile(t, filepath.Join(dir, "NIFTY 50_Historical_TRI_x.csv"),
		"Date,Close\n02-01-2023,110\n")

	loader, err := NewNSECSVLoader(dir)
	require.NoError(t, err)
	series, err := loader.LoadNavData("NIFTY 50")
	require.NoError(t, err)
	nav, _ := series.NavOn(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 110, nav, 1e-9)
}

func TestNSECSVLoaderClosingIndexValueColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "NIFTY200 MOMENTUM 30_Historical_TRI_x.csv"),
		"Date ,Closing Index Value\n02 Jan 2023,25000.25\n")

	loader, err := NewNSECSVLoader(dir)
	require.NoError(t, err)
	series, err := loader.LoadNavData("NIFTY200 MOMENTUM 30")
	require.NoError(t, err)
	nav, ok := series.NavOn(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.InDelta(t, 25000.25, nav, 1e-9)
}

func TestNSECSVLoaderUnknownIndex(t *testing.T) {
	loader, err := NewNSECSVLoader(t.TempDir())
	require.NoError(t, err)
	_, err = loader.LoadNavData("NIFTY 50")
	assert.ErrorIs(t, err, UnknownFundErr)
}

func TestNSECSVLoaderIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a csv")
	writeFile(t, filepath.Join(dir, "NIFTY 50_Historical_TRI_x.csv"),
		"Date,Close\n02-01-2023,100\n")

	loader, err := NewNSECSVLoader(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"NIFTY 50"}, loader.ListAvailable())
}
