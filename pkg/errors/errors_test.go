package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	plain := Validation("bad input")
	if plain.Error() != "bad input" {
		t.Errorf("Error() = %q", plain.Error())
	}

	wrapped := Internal(stderrors.New("dial tcp: refused"))
	if wrapped.Error() != "internal server error: dial tcp: refused" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	err := NotFound("course not found")
	if !Is(err, ErrNotFound) {
		t.Error("Is() should match NOT_FOUND by code")
	}
	if Is(err, ErrValidation) {
		t.Error("Is() matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrNotFound) {
		t.Error("Is() matched a non-AppError")
	}
}

func TestIs_UnwrapsChain(t *testing.T) {
	err := fmt.Errorf("order create: %w", ErrForbidden.WithMessage("course not purchased"))
	if !Is(err, ErrForbidden) {
		t.Error("Is() should unwrap wrapped AppErrors")
	}
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden.WithMessage("x"), http.StatusForbidden},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := GetStatus(tt.err); got != tt.want {
			t.Errorf("GetStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestClientMessage_HidesInternalCause(t *testing.T) {
	err := Internal(stderrors.New("mongo: socket closed"))
	if msg := ClientMessage(err); msg != "internal server error" {
		t.Errorf("ClientMessage() = %q", msg)
	}
	if msg := ClientMessage(stderrors.New("mongo: socket closed")); msg != "internal server error" {
		t.Errorf("ClientMessage() = %q for unknown error", msg)
	}
}

func TestWithMessage_CopiesStatus(t *testing.T) {
	err := ErrUnauthorized.WithMessage("session expired, please log in again")
	if err.Status != http.StatusUnauthorized || err.Code != CodeUnauthorized {
		t.Errorf("WithMessage() lost code/status: %+v", err)
	}
	if ErrUnauthorized.Message == err.Message {
		t.Error("WithMessage() mutated the shared sentinel")
	}
}
