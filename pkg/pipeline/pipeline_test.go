package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_mt_eval/internal/warmup"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func tokFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*"+TokSuffix))
	require.NoError(t, err)
	return matches
}

func newTestRunner(t *testing.T, opts ...RunnerOption) *Runner {
	t.Helper()
	runner, err := NewRunner(opts...)
	require.NoError(t, err)
	return runner
}

func TestRunSelfComparisonScoresMaximum(t *testing.T) {
	dir := t.TempDir()
	text := "Ana are mere și pere.\nSoarele răsare la est.\n"
	sys := writeFile(t, dir, "system.txt", text)
	ref := writeFile(t, dir, "reference.txt", text)

	runner := newTestRunner(t, WithWorkDir(dir))

	require.Empty(t, tokFiles(t, dir), "no .tok files before the run")

	result, err := runner.Run(context.Background(), sys, ref)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.Score, 1e-9)
	assert.True(t, result.Passed)
	assert.Empty(t, tokFiles(t, dir), "no .tok files after a successful run")
}

func TestRunScoresDifferingTexts(t *testing.T) {
	dir := t.TempDir()
	sys := writeFile(t, dir, "system.txt", "pisica sta pe covorul rosu din camera mare\n")
	ref := writeFile(t, dir, "reference.txt", "pisica sta pe covorul verde din camera mare\n")

	runner := newTestRunner(t, WithWorkDir(dir))

	result, err := runner.Run(context.Background(), sys, ref)
	require.NoError(t, err)

	assert.Greater(t, result.Score, 0.0)
	assert.Less(t, result.Score, 100.0)
	assert.Len(t, result.Precisions, 4)
}

func TestRunMissingInputFails(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "reference.txt", "ceva\n")

	runner := newTestRunner(t, WithWorkDir(dir))

	_, err := runner.Run(context.Background(), filepath.Join(dir, "no_such_file.txt"), ref)
	require.Error(t, err)
	assert.Empty(t, tokFiles(t, dir), "no temporaries for an unreadable input")
}

func TestRunSentenceCountMismatchFails(t *testing.T) {
	dir := t.TempDir()
	sys := writeFile(t, dir, "system.txt", "una\ndoua\n")
	ref := writeFile(t, dir, "reference.txt", "una\n")

	runner := newTestRunner(t, WithWorkDir(dir))

	_, err := runner.Run(context.Background(), sys, ref)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sentence count mismatch")
}

func TestRunKeepTemporaries(t *testing.T) {
	dir := t.TempDir()
	sys := writeFile(t, dir, "system.txt", "Ana are mere.\n")
	ref := writeFile(t, dir, "reference.txt", "Ana are mere.\n")

	runner := newTestRunner(t, WithWorkDir(dir), WithKeepTemporaries())

	_, err := runner.Run(context.Background(), sys, ref)
	require.NoError(t, err)

	toks := tokFiles(t, dir)
	assert.Len(t, toks, 2)

	// The temporaries are named after the inputs' base names.
	expected := []string{
		filepath.Join(dir, "system.txt.tok"),
		filepath.Join(dir, "reference.txt.tok"),
	}
	assert.ElementsMatch(t, expected, toks)
}

func TestRunTokContentIsTokenized(t *testing.T) {
	dir := t.TempDir()
	sys := writeFile(t, dir, "system.txt", "Mămăliga e gata!\n")
	ref := writeFile(t, dir, "reference.txt", "Mămăliga e gata!\n")

	runner := newTestRunner(t, WithWorkDir(dir), WithKeepTemporaries())

	_, err := runner.Run(context.Background(), sys, ref)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "system.txt.tok"))
	require.NoError(t, err)
	assert.Equal(t, "Mamaliga e gata !\n", string(data))
}

func TestRunBlankLineCountsAsSentence(t *testing.T) {
	dir := t.TempDir()
	sys := writeFile(t, dir, "system.txt", "   \n")
	ref := writeFile(t, dir, "reference.txt", "ceva\n")

	runner := newTestRunner(t, WithWorkDir(dir))

	// A line that filters down to nothing is still one sentence, so the
	// counts match and the run completes with a zero score.
	result, err := runner.Run(context.Background(), sys, ref)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, tokFiles(t, dir))
}

func TestRunEmptyHypothesisScoresZero(t *testing.T) {
	dir := t.TempDir()
	sys := writeFile(t, dir, "system.txt", " \n \n")
	ref := writeFile(t, dir, "reference.txt", "prima propozitie\na doua propozitie\n")

	runner := newTestRunner(t, WithWorkDir(dir))

	result, err := runner.Run(context.Background(), sys, ref)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0.0, result.BrevityPenalty)
	assert.Equal(t, 0, result.HypLength)
	assert.Equal(t, 5, result.RefLength)
	assert.Empty(t, tokFiles(t, dir), "a zero-score run still cleans up")
}

func TestRunnerWarmUp(t *testing.T) {
	dir := t.TempDir()
	text := "Dl. Ionescu a plătit 1,5 mil. lei.\n"
	sys := writeFile(t, dir, "system.txt", text)
	ref := writeFile(t, dir, "reference.txt", text)

	runner := newTestRunner(t, WithWorkDir(dir), WithWarmUpConfig(warmup.WarmupConfig{
		Concurrency: 1,
		Iterations:  2,
	}))

	result, err := runner.Run(context.Background(), sys, ref)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, result.Score, 1e-9)
}

func TestRunThreshold(t *testing.T) {
	dir := t.TempDir()
	sys := writeFile(t, dir, "system.txt", "cu totul altceva aici acum\n")
	ref := writeFile(t, dir, "reference.txt", "pisica sta pe covor linistita\n")

	runner := newTestRunner(t, WithWorkDir(dir), WithThreshold(50))

	result, err := runner.Run(context.Background(), sys, ref)
	require.NoError(t, err)
	assert.False(t, result.Passed)
}

func TestTokPath(t *testing.T) {
	runner := newTestRunner(t, WithWorkDir("/tmp/work"))
	assert.Equal(t, "/tmp/work/out.txt.tok", runner.TokPath("/data/runs/out.txt"))
}
