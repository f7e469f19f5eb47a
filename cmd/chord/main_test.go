package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testDescription = `bpm: 240
instruments:
  - name: lead
    source: sine
patterns:
  - name: intro
    commands:
      - [play, C4, [1, 4]]
tracks:
  - name: main
    instrument: lead
    commands:
      - [play, intro]
`

func TestRunNoArgs(t *testing.T) {
	assert.Equal(t, errorExitCode, run(nil))
}

func TestRunMissingFile(t *testing.T) {
	assert.Equal(t, errorExitCode, run([]string{filepath.Join(os.TempDir(), "chord_no_such.yml")}))
}

func TestRunExport(t *testing.T) {
	musicPath := filepath.Join(os.TempDir(), "chord_cli_test.yml")
	exportPath := filepath.Join(os.TempDir(), "chord_cli_test.wav")
	defer os.Remove(musicPath)
	defer os.Remove(exportPath)

	err := ioutil.WriteFile(musicPath, []byte(testDescription), 0644)
	assert.NoError(t, err)

	assert.Equal(t, successExitCode, run([]string{"-e", exportPath, musicPath}))

	info, err := os.Stat(exportPath)
	assert.NoError(t, err)
	assert.True(t, info.Size() > 44)
}
