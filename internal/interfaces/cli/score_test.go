package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const benzeneMol = `benzene
  testdata

  6  6  0  0  0  0  0  0  0  0999 V2000
    0.0000    1.4000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    1.2124    0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    1.2124   -0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    0.0000   -1.4000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
   -1.2124   -0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
   -1.2124    0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  4  0
  2  3  4  0
  3  4  4  0
  4  5  4  0
  5  6  4  0
  6  1  4  0
M  END
`

const unsupportedMol = `unsupported
  testdata

  2  1  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 Fe  0  0  0  0  0  0  0  0  0  0  0  0
    1.5000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  1  0
M  END
`

func writeTestSDF(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.sdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScoreCmd_Stdin(t *testing.T) {
	out, _, err := runCommand(t, benzeneMol+"$$$$\n",
		"--config", writeTestConfig(t), "score", "-o", "json")
	require.NoError(t, err)

	var report ScoreReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)
	assert.Equal(t, "benzene", report.Results[0].Name)
	assert.Equal(t, 6, report.Results[0].AtomCount)
	assert.InDelta(t, 12.9658, report.Results[0].Score, 1e-3)
	assert.Empty(t, report.Failures)
}

func TestScoreCmd_FileWithMixedRecords(t *testing.T) {
	stream := benzeneMol + "$$$$\n" + "broken\nrecord\n$$$$\n" + unsupportedMol + "$$$$\n"
	path := writeTestSDF(t, stream)

	out, _, err := runCommand(t, "",
		"--config", writeTestConfig(t), "score", "-o", "json", path)
	require.NoError(t, err)

	var report ScoreReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)
	assert.Equal(t, "benzene", report.Results[0].Name)

	require.Len(t, report.Failures, 2)
	assert.Equal(t, 2, report.Failures[0].Record)
	assert.Equal(t, "MOL_002", report.Failures[0].Code)
	assert.Equal(t, 3, report.Failures[1].Record)
	assert.Equal(t, "CPX_001", report.Failures[1].Code)
	assert.Equal(t, "unsupported", report.Failures[1].Name)
}

func TestScoreCmd_AllRecordsFail(t *testing.T) {
	path := writeTestSDF(t, "broken\nrecord\n$$$$\n")

	_, _, err := runCommand(t, "",
		"--config", writeTestConfig(t), "score", path)
	assert.Error(t, err)
}

func TestScoreCmd_Diagnostics(t *testing.T) {
	out, _, err := runCommand(t, benzeneMol+"$$$$\n",
		"--config", writeTestConfig(t), "score", "--diagnostics", "-o", "json")
	require.NoError(t, err)

	var report ScoreReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)
	require.Len(t, report.Results[0].Contributions, 1)
	assert.Equal(t, "C", report.Results[0].Contributions[0].Element)
}

func TestScoreCmd_TableOutput(t *testing.T) {
	out, _, err := runCommand(t, benzeneMol+"$$$$\n",
		"--config", writeTestConfig(t), "score", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "benzene")
	assert.Contains(t, out, "12.9658")
}

func TestScoreCmd_TextOutput(t *testing.T) {
	out, _, err := runCommand(t, benzeneMol+"$$$$\n",
		"--config", writeTestConfig(t), "score")
	require.NoError(t, err)
	assert.Contains(t, out, "benzene")
}

func TestScoreCmd_MissingFile(t *testing.T) {
	_, _, err := runCommand(t, "",
		"--config", writeTestConfig(t), "score", "/nonexistent/input.sdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}
