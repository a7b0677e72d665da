package hrapi

import (
	"strings"
	"testing"
)

func TestNormalizeError_JSONDetail(t *testing.T) {
	msg := NormalizeError("application/json", []byte(`{"detail":"Not found."}`))
	if msg != "Server Error: Not found." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestNormalizeError_FieldErrors(t *testing.T) {
	raw := []byte(`{"username":["This field is required."],"amount":["Must be positive.","Too large."]}`)
	msg := NormalizeError("application/json", raw)
	if msg != "amount: Must be positive., Too large. | username: This field is required." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestNormalizeError_HTMLIntegrityError(t *testing.T) {
	raw := []byte(`<html><head><title>IntegrityError at /api/admin/meeting-slots/</title></head></html>`)
	msg := NormalizeError("text/html", raw)
	if !strings.HasPrefix(msg, "Integrity Error:") {
		t.Fatalf("expected integrity error message, got %q", msg)
	}
}

func TestNormalizeError_HTMLTitle(t *testing.T) {
	raw := []byte(`<html><title>Server Error (500)</title><body></body></html>`)
	msg := NormalizeError("text/html", raw)
	if msg != "Server Error: Server Error (500)" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestNormalizeError_Unparseable(t *testing.T) {
	msg := NormalizeError("text/plain", []byte("boom"))
	if msg != "Server Error: received an unexpected response with no clear message." {
		t.Fatalf("unexpected message: %q", msg)
	}
}
