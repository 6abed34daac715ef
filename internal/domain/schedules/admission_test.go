package schedules

import (
	"fmt"
	"testing"
	"time"

	"clinic-scheduling/internal/domain/patients"

	"github.com/stretchr/testify/require"
)

var day = time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC)

func fixedID(id string) func() string {
	return func() string { return id }
}

func knownPatients() []patients.Patient {
	return []patients.Patient{{ID: "p1", FullName: "Ana"}}
}

func candidate(at string) Candidate {
	return Candidate{
		PacientID:      "p1",
		ScheduleDate:   day,
		ScheduleTime:   at,
		ScheduleStatus: StatusNotCompleted,
	}
}

// fillDay arma n agendamientos en day, cada uno en un horario distinto.
func fillDay(n int) []Schedule {
	out := make([]Schedule, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Schedule{
			ID:           fmt.Sprintf("s%d", i),
			PacientID:    "p1",
			ScheduleDate: "2030-03-04",
			ScheduleTime: fmt.Sprintf("%02d:00:00", i),
		})
	}
	return out
}

func TestAdmit_AdmitsAndNormalizes(t *testing.T) {
	c := candidate("17:00:00")
	c.ScheduleDate = time.Date(2030, time.March, 4, 22, 15, 0, 0, time.FixedZone("BRT", -3*3600))

	d := Admit(c, knownPatients(), nil, DefaultLimits, fixedID("abc12345"))

	require.Equal(t, Admitted, d.Outcome)
	require.NoError(t, d.Outcome.Err())
	require.Equal(t, Schedule{
		ID:             "abc12345",
		PacientID:      "p1",
		ScheduleDate:   "2030-03-05",
		ScheduleTime:   "17:00:00",
		ScheduleStatus: StatusNotCompleted,
	}, d.Schedule)
}

func TestAdmit_DailyCapacity(t *testing.T) {
	existing := fillDay(19)

	d := Admit(candidate("19:30:00"), knownPatients(), existing, DefaultLimits, fixedID("x"))
	require.Equal(t, Admitted, d.Outcome)

	existing = append(existing, d.Schedule)
	require.Len(t, existing, 20)

	d = Admit(candidate("20:30:00"), knownPatients(), existing, DefaultLimits, fixedID("y"))
	require.Equal(t, RejectedDateFull, d.Outcome)
	require.ErrorIs(t, d.Outcome.Err(), ErrDateFull)
}

func TestAdmit_SlotCapacity(t *testing.T) {
	var existing []Schedule
	for i := 0; i < 2; i++ {
		d := Admit(candidate("10:00:00"), knownPatients(), existing, DefaultLimits, fixedID(fmt.Sprintf("id%d", i)))
		require.Equal(t, Admitted, d.Outcome)
		existing = append(existing, d.Schedule)
	}

	d := Admit(candidate("10:00:00"), knownPatients(), existing, DefaultLimits, fixedID("third"))
	require.Equal(t, RejectedSlotFull, d.Outcome)
	require.ErrorIs(t, d.Outcome.Err(), ErrSlotFull)

	// otro día, mismo horario: entra
	other := candidate("10:00:00")
	other.ScheduleDate = day.AddDate(0, 0, 1)
	d = Admit(other, knownPatients(), existing, DefaultLimits, fixedID("next-day"))
	require.Equal(t, Admitted, d.Outcome)
}

func TestAdmit_SlotComparesRawStrings(t *testing.T) {
	existing := []Schedule{
		{ID: "1", ScheduleDate: "2030-03-04", ScheduleTime: "09:00:00"},
		{ID: "2", ScheduleDate: "2030-03-04", ScheduleTime: "09:00:00"},
	}

	d := Admit(candidate("9:00:00"), knownPatients(), existing, DefaultLimits, fixedID("z"))
	require.Equal(t, Admitted, d.Outcome)
}

func TestAdmit_PatientNotFoundWinsOverFullDay(t *testing.T) {
	c := candidate("10:00:00")
	c.PacientID = "ghost"

	d := Admit(c, knownPatients(), fillDay(20), DefaultLimits, fixedID("x"))
	require.Equal(t, RejectedPatientNotFound, d.Outcome)
	require.ErrorIs(t, d.Outcome.Err(), ErrPatientNotFound)
	require.Empty(t, d.Schedule.ID)

	d = Admit(c, nil, nil, DefaultLimits, fixedID("x"))
	require.Equal(t, RejectedPatientNotFound, d.Outcome)
}

func TestAdmit_DateFullWinsOverSlotFull(t *testing.T) {
	existing := fillDay(18)
	existing = append(existing,
		Schedule{ID: "a", ScheduleDate: "2030-03-04", ScheduleTime: "23:30:00"},
		Schedule{ID: "b", ScheduleDate: "2030-03-04", ScheduleTime: "23:30:00"},
	)

	d := Admit(candidate("23:30:00"), knownPatients(), existing, DefaultLimits, fixedID("x"))
	require.Equal(t, RejectedDateFull, d.Outcome)
}

func TestAdmit_CustomLimits(t *testing.T) {
	limits := Limits{PerDay: 1, PerSlot: 1}
	d := Admit(candidate("08:00:00"), knownPatients(), fillDay(1), limits, fixedID("x"))
	require.Equal(t, RejectedDateFull, d.Outcome)
}

func TestNormalizeDateString_Idempotent(t *testing.T) {
	first, err := NormalizeDateString("2030-03-04T23:59:59.000-05:00")
	require.NoError(t, err)
	require.Equal(t, "2030-03-05", first)

	second, err := NormalizeDateString(first)
	require.NoError(t, err)
	require.Equal(t, first, second)

	third, err := NormalizeDateString(second)
	require.NoError(t, err)
	require.Equal(t, second, third)

	_, err = NormalizeDateString("04/03/2030")
	require.Error(t, err)
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "admitted", Admitted.String())
	require.Equal(t, "patient_not_found", RejectedPatientNotFound.String())
	require.Equal(t, "date_full", RejectedDateFull.String())
	require.Equal(t, "slot_full", RejectedSlotFull.String())
	require.Equal(t, "unknown", Outcome(99).String())
}
