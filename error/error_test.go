package error

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var errTest = errors.New("test cause")

func TestSpecError_Error(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.grammar")
	err := os.WriteFile(path, []byte("E -> T\nT | F -> id\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		err     *SpecError
		msg     string
	}{
		{
			caption: "a cause only",
			err: &SpecError{
				Cause: errTest,
			},
			msg: "error: test cause",
		},
		{
			caption: "a source name, a row, and a detail",
			err: &SpecError{
				Cause:      errTest,
				Detail:     "foo",
				SourceName: "test.grammar",
				Row:        3,
			},
			msg: "test.grammar: 3: error: test cause: foo",
		},
		{
			caption: "a row and a column",
			err: &SpecError{
				Cause: errTest,
				Row:   1,
				Col:   2,
			},
			msg: "1:2: error: test cause",
		},
		{
			caption: "the source line is quoted when a file path is known",
			err: &SpecError{
				Cause:    errTest,
				FilePath: path,
				Row:      2,
			},
			msg: "2: error: test cause\n    T | F -> id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if tt.err.Error() != tt.msg {
				t.Fatalf("unexpected message; want: %q, got: %q", tt.msg, tt.err.Error())
			}
			if !errors.Is(tt.err, errTest) {
				t.Fatalf("the cause must be reachable via errors.Is")
			}
		})
	}
}

func TestSpecErrors_Error(t *testing.T) {
	errs := SpecErrors{
		{Cause: errTest, Row: 1},
		{Cause: errTest, Row: 2},
	}
	want := "1: error: test cause\n2: error: test cause"
	if errs.Error() != want {
		t.Fatalf("unexpected message; want: %q, got: %q", want, errs.Error())
	}
}
