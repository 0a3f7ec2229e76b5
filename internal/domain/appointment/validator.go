package appointment

import (
	"fmt"
	"time"
)

// SlotLimits are the configurable booking bounds a day's schedule is
// validated against.
type SlotLimits struct {
	MaxPerDay   int
	MinInterval time.Duration
}

// CheckSlot decides whether the candidate may join a doctor's day as a
// new scheduled visit. It is a pure decision function: the caller
// supplies a snapshot of the doctor's scheduled visits for the
// candidate's date (any order) and whether the patient is already booked
// anywhere at the exact same date and time. No I/O happens here, which
// keeps the rule chain unit-testable and forces all reads and the
// subsequent insert into one transaction at the call site.
//
// Checks run in a fixed order and the first failure wins:
//
//  1. the doctor has no scheduled visit at the exact time;
//  2. the patient has no scheduled visit at the exact time (with any
//     doctor);
//  3. the doctor's scheduled count for the day is under MaxPerDay;
//  4. every existing visit is at least MinInterval away (an exact match
//     is unreachable here, check 1 already rejected it; the floor is
//     strict, so exactly-MinInterval-apart is legal);
//  5. the patient has no other scheduled visit with this doctor on this
//     date.
func CheckSlot(candidate *Appointment, doctorDay []*Appointment, patientBusy bool, limits SlotLimits) error {
	for _, existing := range doctorDay {
		if existing.Time == candidate.Time {
			return fmt.Errorf("%w: %s at %s", ErrDoctorSlotTaken,
				candidate.Date.Format("2006-01-02"), candidate.Time)
		}
	}

	if patientBusy {
		return fmt.Errorf("%w: %s at %s", ErrPatientSlotTaken,
			candidate.Date.Format("2006-01-02"), candidate.Time)
	}

	if len(doctorDay) >= limits.MaxPerDay {
		return fmt.Errorf("%w: %d of %d booked", ErrDailyLimitReached,
			len(doctorDay), limits.MaxPerDay)
	}

	minGap := int(limits.MinInterval.Minutes())
	for _, existing := range doctorDay {
		if gap := MinutesBetween(candidate.Time, existing.Time); gap > 0 && gap < minGap {
			return fmt.Errorf("%w: need %d minutes, nearest visit at %s",
				ErrMinIntervalViolated, minGap, existing.Time)
		}
	}

	for _, existing := range doctorDay {
		if existing.PatientID == candidate.PatientID {
			return fmt.Errorf("%w: %s", ErrDuplicateVisit,
				candidate.Date.Format("2006-01-02"))
		}
	}

	return nil
}
