package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfoAndErrorStreams(t *testing.T) {
	ui, out, errOut := newTestUI()

	ui.Info("reviewing %s", "app.js")
	ui.Error("failed %s", "badly")

	assert.Contains(t, out.String(), "reviewing app.js")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog(t *testing.T) {
	ui, out, _ := newTestUI()

	ui.VerboseLog("hidden")
	assert.Empty(t, out.String())

	ui.Verbose = true
	ui.VerboseLog("shown")
	assert.Contains(t, out.String(), "shown")
}

func TestDiffStat(t *testing.T) {
	s := DiffStat(3, 1)
	assert.Contains(t, s, "+3")
	assert.Contains(t, s, "-1")
}

func TestScoreColor_Bands(t *testing.T) {
	// Colors may be stripped in tests; the number must survive either way.
	assert.Contains(t, ScoreColor(95), "95")
	assert.Contains(t, ScoreColor(60), "60")
	assert.Contains(t, ScoreColor(10), "10")
}

func TestSourceColor(t *testing.T) {
	assert.Contains(t, SourceColor("eslint"), "eslint")
	assert.Contains(t, SourceColor("builtin"), "builtin")
}
