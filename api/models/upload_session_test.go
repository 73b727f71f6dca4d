package models

import "testing"

// TestUploadSessionLifecycle tests create, cancel and the cancelled check
func TestUploadSessionLifecycle(t *testing.T) {
	ctx := CreateUploadSessionContext("s1")
	if IsUploadSessionCancelled("s1") {
		t.Error("Fresh session must not read as cancelled")
	}

	if !CancelUploadSession("s1") {
		t.Fatal("Expected cancel of a live session to succeed")
	}
	select {
	case <-ctx.Done():
	default:
		t.Error("Expected session context to be done after cancel")
	}
	if !IsUploadSessionCancelled("s1") {
		t.Error("Cancelled session must read as cancelled")
	}
}

// TestCancelUnknownSession tests that cancelling twice reports failure
func TestCancelUnknownSession(t *testing.T) {
	if CancelUploadSession("missing") {
		t.Error("Expected cancel of an unknown session to fail")
	}
	CreateUploadSessionContext("s2")
	if !CancelUploadSession("s2") {
		t.Fatal("Expected first cancel to succeed")
	}
	if CancelUploadSession("s2") {
		t.Error("Expected second cancel to fail")
	}
}

// TestFinishUploadSession tests that finishing releases the session
func TestFinishUploadSession(t *testing.T) {
	CreateUploadSessionContext("s3")
	FinishUploadSession("s3")
	if CancelUploadSession("s3") {
		t.Error("Expected a finished session to be unknown")
	}
}
