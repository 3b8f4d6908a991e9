package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openFixture(t *testing.T, content string) *os.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "samples.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	t.Cleanup(func() { f.Close() })

	return f
}

func TestReadColumnsPairs(t *testing.T) {
	f := openFixture(t, "# x y\n0 1.5\n\n1 2.5\n2 3.5\n")

	x, y, err := readColumns(f)
	if err != nil {
		t.Fatalf("readColumns: %v", err)
	}

	wantX := []float64{0, 1, 2}
	wantY := []float64{1.5, 2.5, 3.5}
	for i := range wantX {
		if x[i] != wantX[i] || y[i] != wantY[i] {
			t.Fatalf("row %d: (%v, %v), want (%v, %v)", i, x[i], y[i], wantX[i], wantY[i])
		}
	}
}

func TestReadColumnsSingle(t *testing.T) {
	f := openFixture(t, "1\n2\n3\n")

	x, y, err := readColumns(f)
	if err != nil {
		t.Fatalf("readColumns: %v", err)
	}
	if x != nil {
		t.Fatalf("x = %v for y-only input, want nil", x)
	}
	if len(y) != 3 || y[2] != 3 {
		t.Fatalf("y = %v, want [1 2 3]", y)
	}
}

func TestReadColumnsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"ragged columns", "0 1\n2\n", "columns"},
		{"too many columns", "0 1 2\n", "columns"},
		{"bad number", "0 abc\n", "line 1"},
		{"empty input", "# only a comment\n", "no samples"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := openFixture(t, tc.content)

			if _, _, err := readColumns(f); err == nil || !strings.Contains(err.Error(), tc.errPart) {
				t.Fatalf("err = %v, want mention of %q", err, tc.errPart)
			}
		})
	}
}
