package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

const twoRowSeed = `criteria:
  - name: Climate
    weight: 4
    scores: {A: 5, B: 1, I: 2, N: 3}
  - name: Rent
    scores: {A: 1, B: 5}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeTextDefaultSeed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAnalysis(&buf, scoring.DefaultSeed(), "text"))

	out := buf.String()
	assert.Contains(t, out, "I (best)")
	assert.Contains(t, out, "A (worst)")
	assert.Contains(t, out, "215/335")
	assert.Contains(t, out, "64.2%")
	assert.Contains(t, out, "Stability # years (+55), Family visits (+50)")
	assert.Contains(t, out, "criteria: 10  total weight: 67")
	assert.Contains(t, out, "frontier: ")
}

func TestAnalyzeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAnalysis(&buf, scoring.DefaultSeed(), "json"))

	var a scoring.Analysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &a))
	assert.Equal(t, scoring.OptionI, a.Best)
	assert.Equal(t, 67, a.TotalWeight)
}

func TestAnalyzeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeAnalysis(&buf, scoring.DefaultSeed(), "xml")
	assert.Error(t, err)
}

func TestAnalyzeEmptyMatrix(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAnalysis(&buf, nil, "text"))

	out := buf.String()
	assert.Contains(t, out, "0/0")
	assert.Contains(t, out, "A (best)")
	assert.Contains(t, out, "criteria: 0  total weight: 0")
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat(".", barWidth), bar(0))
	assert.Equal(t, strings.Repeat("#", barWidth), bar(100))
	assert.Equal(t, strings.Repeat("#", barWidth), bar(140))
	assert.Equal(t, strings.Repeat("#", 10)+strings.Repeat(".", 10), bar(50))
}

func TestSeedCommandUsesConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	seedPath := writeFile(t, dir, "seed.yaml", twoRowSeed)
	cfgPath := writeFile(t, dir, "config.yaml", "matrix:\n  seed_file: "+seedPath+"\n")

	out, err := runRoot(t, "seed", "--config", cfgPath)
	require.NoError(t, err)

	parsed, err := scoring.ParseSeed([]byte(out))
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, "Climate", parsed[0].Name)
	assert.Equal(t, 4, parsed[0].Weight)
	assert.Equal(t, scoring.DefaultWeight, parsed[1].Weight)
	assert.Equal(t, scoring.DefaultScore, parsed[1].Scores[scoring.OptionN])
}

func TestAnalyzeCommandWithSeedFile(t *testing.T) {
	dir := t.TempDir()
	seedPath := writeFile(t, dir, "seed.yaml", twoRowSeed)
	cfgPath := writeFile(t, dir, "config.yaml", "matrix:\n  seed_file: "+seedPath+"\n")

	out, err := runRoot(t, "analyze", "--config", cfgPath, "--format", "json")
	require.NoError(t, err)

	var a scoring.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, 9, a.TotalWeight)
	// A: 4*5+5*1=25, B: 4+25=29, I: 8+15=23, N: 12+15=27
	assert.Equal(t, scoring.OptionB, a.Best)
	assert.Equal(t, scoring.OptionI, a.Worst)
}

func TestAnalyzeCommandMissingSeedFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "matrix:\n  seed_file: "+filepath.Join(dir, "missing.yaml")+"\n")

	_, err := runRoot(t, "analyze", "--config", cfgPath)
	assert.Error(t, err)
}

type fakeHermes struct {
	messages map[string][]byte
}

func (f *fakeHermes) Publish(string, interface{}) error { return nil }
func (f *fakeHermes) Subscribe(subject string, handler func(string, []byte)) error {
	for subj, data := range f.messages {
		handler(subj, data)
	}
	return nil
}
func (f *fakeHermes) Close() {}

func TestWatchPrintsEvents(t *testing.T) {
	h := &fakeHermes{messages: map[string][]byte{"matrix.reset": []byte(`{"criteria":10}`)}}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	require.NoError(t, watch(ctx, h, "matrix.>", &buf))
	assert.Equal(t, "matrix.reset {\"criteria\":10}\n", buf.String())
}

func TestWatchRequiresHermesURL(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "hermes:\n  url: \"\"\n")
	t.Setenv("MATRIX_HERMES_URL", "")

	_, err := runRoot(t, "watch", "--config", cfgPath)
	assert.Error(t, err)
}
