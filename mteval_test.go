// mteval_test.go
package mteval

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestScoreLinesWithDefaults(t *testing.T) {
	tests := []struct {
		name      string
		system    []string
		reference []string
		// expected score bounds on the 0-100 scale
		minScore float64
		maxScore float64
	}{
		{
			name:      "Identical sentences",
			system:    []string{"Ana are mere și pere.", "Soarele răsare la est."},
			reference: []string{"Ana are mere și pere.", "Soarele răsare la est."},
			minScore:  100,
			maxScore:  100,
		},
		{
			name:      "Equivalent up to diacritics and cedillas",
			system:    []string{"Aceştia sunt paşii următori."},
			reference: []string{"Aceștia sunt pașii următori."},
			minScore:  100,
			maxScore:  100,
		},
		{
			name:      "One word differs",
			system:    []string{"pisica sta pe covorul rosu din camera mare"},
			reference: []string{"pisica sta pe covorul verde din camera mare"},
			minScore:  1,
			maxScore:  99,
		},
		{
			name:      "Nothing in common",
			system:    []string{"cu totul altceva"},
			reference: []string{"pisica sta pe covor"},
			minScore:  0,
			maxScore:  0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ScoreLinesWithDefaults(tc.system, tc.reference)
			if err != nil {
				t.Fatalf("ScoreLinesWithDefaults: %v", err)
			}
			if result.Score < tc.minScore-1e-9 || result.Score > tc.maxScore+1e-9 {
				t.Errorf("expected score in [%v, %v], got %v, details: %v",
					tc.minScore, tc.maxScore, result.Score, result.Details)
			}
		})
	}
}

func TestEvaluatorScoreFiles(t *testing.T) {
	dir := t.TempDir()
	text := "Guvernul a anunțat noi măsuri.\n"

	sysPath := filepath.Join(dir, "sys.txt")
	refPath := filepath.Join(dir, "ref.txt")
	if err := os.WriteFile(sysPath, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(refPath, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	// ScoreFiles writes its temporaries into the working directory.
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldWD)

	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := e.ScoreFiles(context.Background(), sysPath, refPath)
	if err != nil {
		t.Fatalf("ScoreFiles: %v", err)
	}
	if math.Abs(result.Score-100) > 1e-9 {
		t.Errorf("expected score 100 for self-comparison, got %f", result.Score)
	}

	for _, name := range []string{"sys.txt.tok", "ref.txt.tok"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("expected temporary %s to be removed", name)
		}
	}
}

func TestEvaluatorScoreText(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	text := "Ana are mere.\nSoarele răsare la est.\n"
	result, err := e.ScoreText(context.Background(), text, text)
	if err != nil {
		t.Fatalf("ScoreText: %v", err)
	}
	if math.Abs(result.Score-100) > 1e-9 {
		t.Errorf("expected score 100 for self-comparison, got %f", result.Score)
	}

	_, err = e.ScoreText(context.Background(), "una\ndoua\n", "una\n")
	if err == nil {
		t.Fatal("expected an error for mismatched sentence counts")
	}
}

func TestResultString(t *testing.T) {
	result, err := ScoreLinesWithDefaults(
		[]string{"Ana are mere."},
		[]string{"Ana are mere."},
	)
	if err != nil {
		t.Fatal(err)
	}

	want := "BLEU = 100.00, 100.0/100.0/100.0/100.0 (BP=1.000, ratio=1.000, hyp_len=4, ref_len=4)"
	if got := result.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
