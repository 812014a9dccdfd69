package cmderr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesWrappedKind(t *testing.T) {
	base := New(NotFound, "FocusWindow", errors.New("window 7 does not exist"))
	wrapped := fmt.Errorf("dispatch: %w", base)

	if !Is(wrapped, NotFound) {
		t.Error("expected Is to match through fmt.Errorf wrapping")
	}
	if Is(wrapped, InvalidArgument) {
		t.Error("expected Is not to match a different kind")
	}
}

func TestIsRejectsPlainErrors(t *testing.T) {
	if Is(errors.New("boom"), NotFound) {
		t.Error("expected Is to reject an error that isn't a *Error")
	}
	if Is(nil, NotFound) {
		t.Error("expected Is to reject a nil error")
	}
}

func TestErrorMessageIncludesOpKindAndCause(t *testing.T) {
	err := New(InvalidArgument, "SetLayout", errors.New(`unknown mode "diagonal"`))
	got := err.Error()
	want := `SetLayout: invalid_argument: unknown mode "diagonal"`
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorMessageWithoutCause(t *testing.T) {
	err := New(NoOp, "MoveFocus", nil)
	if got, want := err.Error(), "MoveFocus: no_op"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestKindStringUnknown(t *testing.T) {
	if got, want := Kind(99).String(), "unknown"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
