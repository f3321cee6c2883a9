package leave

import (
	"testing"
	"time"
)

func validInput() RequestInput {
	return RequestInput{
		Type:    TypeSick,
		StartAt: time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 13, 11, 0, 0, 0, time.UTC),
		Reason:  "flu",
	}
}

func TestValidateInput(t *testing.T) {
	if err := ValidateInput(validInput(), 7*24*time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateInputRejectsBadType(t *testing.T) {
	input := validInput()
	input.Type = "vacation"
	err := ValidateInput(input, 0)
	if err == nil || err.Field != "type" {
		t.Fatalf("expected type validation error, got %v", err)
	}
}

func TestValidateInputRejectsInvertedInterval(t *testing.T) {
	input := validInput()
	input.StartAt, input.EndAt = input.EndAt, input.StartAt
	err := ValidateInput(input, 0)
	if err == nil || err.Field != "endAt" {
		t.Fatalf("expected endAt validation error, got %v", err)
	}
}

func TestValidateInputSpanCap(t *testing.T) {
	input := validInput()
	input.EndAt = input.StartAt.Add(8 * 24 * time.Hour)

	if err := ValidateInput(input, 7*24*time.Hour); err == nil || err.Field != "endAt" {
		t.Fatalf("expected span validation error, got %v", err)
	}

	// Zero maxSpan disables the cap; edits rely on this.
	if err := ValidateInput(input, 0); err != nil {
		t.Fatalf("unexpected error with cap disabled: %v", err)
	}
}

func TestValidateInputRequiresReason(t *testing.T) {
	input := validInput()
	input.Reason = "   "
	err := ValidateInput(input, 0)
	if err == nil || err.Field != "reason" {
		t.Fatalf("expected reason validation error, got %v", err)
	}
}

func TestValidateAttachment(t *testing.T) {
	ok := AttachmentUpload{FileName: "note.png", ContentType: "image/png", Size: 2 << 20}
	if err := ValidateAttachment(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tooBig := AttachmentUpload{FileName: "scan.pdf", ContentType: "application/pdf", Size: 12 << 20}
	if err := ValidateAttachment(tooBig); err == nil || err.Field != "attachments" {
		t.Fatalf("expected size validation error, got %v", err)
	}

	badType := AttachmentUpload{FileName: "note.gif", ContentType: "image/gif", Size: 1024}
	if err := ValidateAttachment(badType); err == nil || err.Field != "attachments" {
		t.Fatalf("expected type validation error, got %v", err)
	}
}

func TestValidateInputChecksAttachmentsBeforeUpload(t *testing.T) {
	input := validInput()
	input.Attachments = []AttachmentUpload{
		{FileName: "ok.png", ContentType: "image/png", Size: 1024},
		{FileName: "huge.pdf", ContentType: "application/pdf", Size: 12 << 20},
	}
	err := ValidateInput(input, 0)
	if err == nil || err.Field != "attachments" {
		t.Fatalf("expected attachments validation error, got %v", err)
	}
}
