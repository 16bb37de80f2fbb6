package errors

import (
	stderrors "errors"
	"testing"
)

func TestParseError(t *testing.T) {
	underlying := stderrors.New("syntax error")
	err := NewParseError("/path/to/file.java", 10, 5, underlying)

	if !stderrors.Is(err, underlying) {
		t.Errorf("expected error to unwrap to underlying error")
	}

	expectedMsg := "parse error at /path/to/file.java:10:5: syntax error"
	if err.Error() != expectedMsg {
		t.Errorf("expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestParseErrorNoLocation(t *testing.T) {
	underlying := stderrors.New("file not found")
	err := NewParseError("/missing/Foo.java", 0, 0, underlying)
	expectedMsg := "parse error in /missing/Foo.java: file not found"
	if err.Error() != expectedMsg {
		t.Errorf("expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestConfigError(t *testing.T) {
	underlying := stderrors.New("invalid value")
	err := NewConfigError("max_length", "-1", underlying)

	if err.Field != "max_length" {
		t.Errorf("expected Field to be 'max_length', got %s", err.Field)
	}
	if !stderrors.Is(err, underlying) {
		t.Errorf("expected error to unwrap to underlying error")
	}
}

func TestValidationError(t *testing.T) {
	underlying := stderrors.New("missing class file")
	err := NewValidationError("Foo.java", underlying)
	if err.SourceFile != "Foo.java" {
		t.Errorf("expected SourceFile to be 'Foo.java', got %s", err.SourceFile)
	}
}

func TestSystemError(t *testing.T) {
	underlying := stderrors.New("permission denied")
	err := NewSystemError("read", underlying)
	if err.Operation != "read" {
		t.Errorf("expected Operation to be 'read', got %s", err.Operation)
	}
}

func TestMultiError(t *testing.T) {
	err1 := stderrors.New("error 1")
	err2 := stderrors.New("error 2")
	err3 := stderrors.New("error 3")

	multiErr := NewMultiError([]error{err1, err2, err3})
	if len(multiErr.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d", len(multiErr.Errors))
	}

	errMsg := multiErr.Error()
	if len(errMsg) < 10 || errMsg[:10] != "3 errors: " {
		t.Errorf("expected message to start with '3 errors: ', got %q", errMsg)
	}

	singleErr := NewMultiError([]error{err1})
	if singleErr.Error() != "error 1" {
		t.Errorf("expected 'error 1', got %q", singleErr.Error())
	}

	emptyErr := NewMultiError([]error{})
	if emptyErr.Error() != "no errors" {
		t.Errorf("expected 'no errors', got %q", emptyErr.Error())
	}

	nilFiltered := NewMultiError([]error{err1, nil, err2, nil})
	if len(nilFiltered.Errors) != 2 {
		t.Errorf("expected 2 errors after filtering nil, got %d", len(nilFiltered.Errors))
	}

	unwrapped := multiErr.Unwrap()
	if len(unwrapped) != 3 {
		t.Errorf("expected 3 unwrapped errors, got %d", len(unwrapped))
	}
}
