package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

var (
	today     = time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	yesterday = today.AddDate(0, 0, -1)
	tomorrow  = today.AddDate(0, 0, 1)
)

func scheduledOn(date time.Time) *Appointment {
	return &Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Date:      DateOnly(date),
		Time:      TimeOfDay(10 * 60),
		Status:    StatusScheduled,
	}
}

func strptr(s string) *string { return &s }

func statusPtr(s Status) *Status { return &s }

func TestApply_CompleteWithDiagnosis(t *testing.T) {
	a := scheduledOn(yesterday)

	err := a.Apply(Patch{Status: statusPtr(StatusCompleted), Diagnosis: strptr("ARVI")}, today)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if a.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", a.Status)
	}
	if a.Diagnosis == nil || *a.Diagnosis != "ARVI" {
		t.Fatalf("diagnosis = %v, want ARVI", a.Diagnosis)
	}
}

func TestApply_CompleteOnItsDate(t *testing.T) {
	a := scheduledOn(today)
	if err := a.Apply(Patch{Status: statusPtr(StatusCompleted)}, today); err != nil {
		t.Fatalf("completing on the visit date should pass: %v", err)
	}
}

func TestApply_CompleteFutureVisit(t *testing.T) {
	a := scheduledOn(tomorrow)

	err := a.Apply(Patch{Status: statusPtr(StatusCompleted)}, today)
	if !errors.Is(err, ErrCompleteFutureVisit) {
		t.Fatalf("want ErrCompleteFutureVisit, got %v", err)
	}
	if a.Status != StatusScheduled {
		t.Fatalf("rejected patch must not mutate, status = %s", a.Status)
	}
}

// The premature-completion rule reads the record's current date, not a
// new date carried by the same patch. Moving a future visit to the past
// and completing it must be two separate updates.
func TestApply_CompleteFutureVisitWithPastDatePatch(t *testing.T) {
	a := scheduledOn(tomorrow)
	past := DateOnly(yesterday)

	err := a.Apply(Patch{Date: &past, Status: statusPtr(StatusCompleted)}, today)
	if !errors.Is(err, ErrCompleteFutureVisit) {
		t.Fatalf("want ErrCompleteFutureVisit, got %v", err)
	}
	if !a.Date.Equal(DateOnly(tomorrow)) {
		t.Fatalf("rejected patch must not move the date, got %s", a.Date)
	}
}

func TestApply_CancelCompleted(t *testing.T) {
	a := scheduledOn(yesterday)
	if err := a.Apply(Patch{Status: statusPtr(StatusCompleted), Diagnosis: strptr("flu")}, today); err != nil {
		t.Fatalf("setup: %v", err)
	}

	err := a.Apply(Patch{Status: statusPtr(StatusCancelled)}, today)
	if !errors.Is(err, ErrCancelCompleted) {
		t.Fatalf("want ErrCancelCompleted, got %v", err)
	}
	if a.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", a.Status)
	}
}

func TestApply_CancelClearsDiagnosis(t *testing.T) {
	a := scheduledOn(tomorrow)
	a.Diagnosis = strptr("draft notes")

	if err := a.Apply(Patch{Status: statusPtr(StatusCancelled)}, today); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if a.Status != StatusCancelled {
		t.Fatalf("status = %s, want cancelled", a.Status)
	}
	if a.Diagnosis != nil {
		t.Fatalf("cancellation must clear the diagnosis, got %q", *a.Diagnosis)
	}
}

func TestApply_DiagnosisOnCancelled(t *testing.T) {
	a := scheduledOn(tomorrow)
	a.Status = StatusCancelled

	err := a.Apply(Patch{Diagnosis: strptr("late notes")}, today)
	if !errors.Is(err, ErrDiagnosisOnCancelled) {
		t.Fatalf("want ErrDiagnosisOnCancelled, got %v", err)
	}
}

// A diagnosis riding along with a cancellation is rejected against the
// resulting status, not the current one.
func TestApply_DiagnosisWithCancellationPatch(t *testing.T) {
	a := scheduledOn(tomorrow)

	err := a.Apply(Patch{Status: statusPtr(StatusCancelled), Diagnosis: strptr("notes")}, today)
	if !errors.Is(err, ErrDiagnosisOnCancelled) {
		t.Fatalf("want ErrDiagnosisOnCancelled, got %v", err)
	}
	if a.Status != StatusScheduled {
		t.Fatalf("rejected patch must not mutate, status = %s", a.Status)
	}
}

// Reviving a cancelled visit as completed is deliberately permitted.
func TestApply_CancelledThenCompleted(t *testing.T) {
	a := scheduledOn(yesterday)
	a.Status = StatusCancelled

	if err := a.Apply(Patch{Status: statusPtr(StatusCompleted)}, today); err != nil {
		t.Fatalf("cancelled to completed should pass: %v", err)
	}
	if a.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", a.Status)
	}
}

func TestApply_InvalidStatus(t *testing.T) {
	a := scheduledOn(tomorrow)
	bad := Status("postponed")

	err := a.Apply(Patch{Status: &bad}, today)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus, got %v", err)
	}
}

func TestApply_Reschedule(t *testing.T) {
	a := scheduledOn(tomorrow)
	newDate := DateOnly(tomorrow.AddDate(0, 0, 3))
	newTime := TimeOfDay(14 * 60)

	if err := a.Apply(Patch{Date: &newDate, Time: &newTime}, today); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !a.Date.Equal(newDate) || a.Time != newTime {
		t.Fatalf("got %s %s, want %s %s", a.Date, a.Time, newDate, newTime)
	}
}

func TestPatch_IsEmpty(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Fatal("zero patch should be empty")
	}
	if (Patch{Diagnosis: strptr("x")}).IsEmpty() {
		t.Fatal("patch with a field should not be empty")
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusCompleted, StatusCancelled} {
		if !s.IsValid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if Status("unknown").IsValid() {
		t.Fatal("unknown status should be invalid")
	}
}
