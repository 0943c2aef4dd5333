package runtime

import (
	"strings"
	"testing"
)

func TestUnboundSymbolError(t *testing.T) {
	err := NewUnboundSymbolError("frob")
	if !strings.Contains(err.Error(), "frob") {
		t.Errorf("expected message to mention symbol name, got %q", err.Error())
	}
	if !IsUnboundSymbolError(err) {
		t.Error("IsUnboundSymbolError() should return true")
	}
	if IsArityMismatchError(err) {
		t.Error("IsArityMismatchError() should return false for a different kind")
	}
}

func TestArityMismatchError(t *testing.T) {
	err := NewArityMismatchError(2, 3)
	msg := err.Error()
	if !strings.Contains(msg, "2") || !strings.Contains(msg, "3") {
		t.Errorf("expected message to mention both counts, got %q", msg)
	}
	if !IsArityMismatchError(err) {
		t.Error("IsArityMismatchError() should return true")
	}
}

func TestTypeMismatchError(t *testing.T) {
	err := NewTypeMismatchError("number", String("hi"))
	if !strings.Contains(err.Error(), "string") {
		t.Errorf("expected message to mention actual type, got %q", err.Error())
	}

	nilErr := NewTypeMismatchError("number", nil)
	if !strings.Contains(nilErr.Error(), "nil") {
		t.Errorf("expected nil-got message to say nil, got %q", nilErr.Error())
	}
	if !IsTypeMismatchError(err) {
		t.Error("IsTypeMismatchError() should return true")
	}
}

func TestNotAProcedureError(t *testing.T) {
	err := NewNotAProcedureError(Integer(3))
	if !strings.Contains(err.Error(), "number") {
		t.Errorf("expected message to mention the offending type, got %q", err.Error())
	}
	if !IsNotAProcedureError(err) {
		t.Error("IsNotAProcedureError() should return true")
	}
}

func TestImproperListError(t *testing.T) {
	err := NewImproperListError(Integer(5))
	if !IsImproperListError(err) {
		t.Error("IsImproperListError() should return true")
	}
}

func TestUserError(t *testing.T) {
	err := NewUserError(String("bad input"), Integer(7), "Error: bad input: 7")
	if err.Error() != "Error: bad input: 7" {
		t.Errorf("expected pre-formatted message to pass through, got %q", err.Error())
	}
	if !IsUserError(err) {
		t.Error("IsUserError() should return true")
	}
}
