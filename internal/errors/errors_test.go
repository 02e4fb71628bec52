package errors

import (
	stderrors "errors"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	base := SchemaMismatch("missing columns")
	wrapped := Wrap(base, "load failed")

	if GetCode(wrapped) != CodeSchemaMismatch {
		t.Errorf("Expected wrapped error to keep code %s, got %s", CodeSchemaMismatch, GetCode(wrapped))
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("Expected wrapped error to unwrap to the base error")
	}
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "context")
	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("Expected INTERNAL_ERROR for plain cause, got %s", GetCode(wrapped))
	}
	if wrapped.Error() != "context: boom" {
		t.Errorf("Unexpected message: %s", wrapped.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Expected Wrap(nil) to be nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Expected Wrapf(nil) to be nil")
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if GetCode(stderrors.New("plain")) != "UNKNOWN" {
		t.Error("Expected UNKNOWN for non-app errors")
	}
}

func TestSheetUnreachable(t *testing.T) {
	cause := stderrors.New("timeout")
	err := SheetUnreachable("Sales Data", cause)

	if err.Code != CodeSheetUnreachable {
		t.Errorf("Expected code %s, got %s", CodeSheetUnreachable, err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("Expected cause to be wrapped")
	}
}
