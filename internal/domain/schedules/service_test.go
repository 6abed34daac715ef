package schedules

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"clinic-scheduling/internal/domain/patients"
	"clinic-scheduling/internal/platform/validation"

	"github.com/stretchr/testify/require"
)

// testRepo es un Repository en memoria mínimo para los tests del service.
type testRepo struct {
	mu    sync.Mutex
	items []Schedule
	fail  error
}

func (r *testRepo) Insert(_ context.Context, s Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.items = append(r.items, s)
	return nil
}

func (r *testRepo) List(_ context.Context) ([]Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Schedule(nil), r.items...), nil
}

func (r *testRepo) ReplaceAll(_ context.Context, ss []Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]Schedule(nil), ss...)
	return nil
}

func (r *testRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items[:0]
	for _, s := range r.items {
		if s.ID != id {
			out = append(out, s)
		}
	}
	r.items = out
	return nil
}

func (r *testRepo) DeleteByPatientID(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items[:0]
	n := 0
	for _, s := range r.items {
		if s.PacientID == id {
			n++
			continue
		}
		out = append(out, s)
	}
	r.items = out
	return n, nil
}

type staticPatients []patients.Patient

func (p staticPatients) List(context.Context) ([]patients.Patient, error) {
	return p, nil
}

var today = time.Date(2030, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *testRepo, opts ...Option) *Service {
	var seq atomic.Int64
	base := []Option{
		WithClock(func() time.Time { return today }),
		WithIDGenerator(func() string { return fmt.Sprintf("id%d", seq.Add(1)) }),
	}
	return NewService(repo, staticPatients{{ID: "p1", FullName: "Ana"}}, append(base, opts...)...)
}

func validInput(at string) CreateInput {
	return CreateInput{PacientID: "p1", ScheduleDate: "2030-03-04", ScheduleTime: at}
}

func TestService_CreateDefaultsStatus(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo)

	sc, err := svc.Create(context.Background(), validInput("10:00:00"))
	require.NoError(t, err)
	require.Equal(t, "id1", sc.ID)
	require.Equal(t, StatusNotCompleted, sc.ScheduleStatus)
	require.Equal(t, "2030-03-04", sc.ScheduleDate)
	require.Len(t, repo.items, 1)
}

func TestService_CreateValidation(t *testing.T) {
	svc := newTestService(&testRepo{})

	cases := []struct {
		name string
		in   CreateInput
		path string
	}{
		{"missing patient", CreateInput{ScheduleDate: "2030-03-04", ScheduleTime: "10:00:00"}, "pacientId"},
		{"blank patient", CreateInput{PacientID: "   ", ScheduleDate: "2030-03-04", ScheduleTime: "10:00:00"}, "pacientId"},
		{"missing date", CreateInput{PacientID: "p1", ScheduleTime: "10:00:00"}, "scheduleDate"},
		{"blank date", CreateInput{PacientID: "p1", ScheduleDate: "   ", ScheduleTime: "10:00:00"}, "scheduleDate"},
		{"bad date", CreateInput{PacientID: "p1", ScheduleDate: "tomorrow", ScheduleTime: "10:00:00"}, "scheduleDate"},
		{"past date", CreateInput{PacientID: "p1", ScheduleDate: "2030-02-28", ScheduleTime: "10:00:00"}, "scheduleDate"},
		{"missing time", CreateInput{PacientID: "p1", ScheduleDate: "2030-03-04"}, "scheduleTime"},
		{"bad time", CreateInput{PacientID: "p1", ScheduleDate: "2030-03-04", ScheduleTime: "25:00:00"}, "scheduleTime"},
		{"bad status", CreateInput{PacientID: "p1", ScheduleDate: "2030-03-04", ScheduleTime: "10:00:00", ScheduleStatus: "done"}, "scheduleStatus"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			verr, ok := validation.AsError(err)
			require.True(t, ok, "want validation error, got %v", err)
			require.Equal(t, tc.path, verr.Issues[0].Path)
		})
	}
}

func TestService_CreateBlankDateIsNotStored(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateInput{PacientID: "p1", ScheduleDate: "   ", ScheduleTime: "10:00:00"})
	verr, ok := validation.AsError(err)
	require.True(t, ok, "want validation error, got %v", err)
	require.Equal(t, []validation.Issue{{Path: "scheduleDate", Message: "scheduleDate is required"}}, verr.Issues)
	require.Empty(t, repo.items)
}

func TestService_CreateTodayIsAllowed(t *testing.T) {
	svc := newTestService(&testRepo{})
	_, err := svc.Create(context.Background(), CreateInput{PacientID: "p1", ScheduleDate: "2030-03-01", ScheduleTime: "08:00:00"})
	require.NoError(t, err)
}

func TestService_CreateRejections(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{PacientID: "ghost", ScheduleDate: "2030-03-04", ScheduleTime: "10:00:00"})
	require.ErrorIs(t, err, ErrPatientNotFound)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, validInput("10:00:00"))
		require.NoError(t, err)
	}
	_, err = svc.Create(ctx, validInput("10:00:00"))
	require.ErrorIs(t, err, ErrSlotFull)
	require.Len(t, repo.items, 2)
}

func TestService_CreateStorageError(t *testing.T) {
	boom := errors.New("disk full")
	svc := newTestService(&testRepo{fail: boom})

	_, err := svc.Create(context.Background(), validInput("10:00:00"))
	require.ErrorIs(t, err, boom)
	_, isValidation := validation.AsError(err)
	require.False(t, isValidation)
}

func TestService_ConcurrentCreatesRespectCaps(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo)

	var wg sync.WaitGroup
	var admitted atomic.Int64
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// 8 horarios distintos, 5 intentos por horario
			at := fmt.Sprintf("%02d:00:00", 8+i%8)
			if _, err := svc.Create(context.Background(), validInput(at)); err == nil {
				admitted.Add(1)
			}
		}(i)
	}
	wg.Wait()

	require.EqualValues(t, 16, admitted.Load())

	perSlot := map[string]int{}
	for _, s := range repo.items {
		perSlot[s.ScheduleTime]++
	}
	for slot, n := range perSlot {
		require.LessOrEqual(t, n, 2, slot)
	}
}

func TestService_ConcurrentCreatesRespectDailyCap(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			at := fmt.Sprintf("%02d:%02d:00", i/2, (i%2)*30)
			_, _ = svc.Create(context.Background(), validInput(at))
		}(i)
	}
	wg.Wait()

	require.Len(t, repo.items, DefaultLimits.PerDay)
}

func TestService_UpdateMergesAndIgnoresUnknownID(t *testing.T) {
	note := "ok"
	repo := &testRepo{items: []Schedule{
		{ID: "a", PacientID: "p1", ScheduleDate: "2030-03-04", ScheduleTime: "10:00:00", ScheduleStatus: StatusNotCompleted},
		{ID: "b", PacientID: "p1", ScheduleDate: "2030-03-05", ScheduleTime: "11:00:00", ScheduleStatus: StatusNotCompleted},
	}}
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, "a", UpdateInput{
		ScheduleDate:   "2030-04-01",
		ScheduleTime:   "12:00:00",
		ScheduleStatus: StatusCompleted,
		Conclusion:     &note,
	}))

	got, _ := repo.List(ctx)
	require.Equal(t, Schedule{ID: "a", PacientID: "p1", ScheduleDate: "2030-04-01", ScheduleTime: "12:00:00", ScheduleStatus: StatusCompleted, Conclusion: &note}, got[0])
	require.Equal(t, "b", got[1].ID)
	require.Equal(t, "11:00:00", got[1].ScheduleTime)

	require.NoError(t, svc.Update(ctx, "missing", UpdateInput{ScheduleTime: "00:00:00"}))
	after, _ := repo.List(ctx)
	require.Equal(t, got, after)
}

func TestService_DeleteByPatient(t *testing.T) {
	repo := &testRepo{items: []Schedule{
		{ID: "a", PacientID: "p1"},
		{ID: "b", PacientID: "p2"},
		{ID: "c", PacientID: "p1"},
	}}
	svc := newTestService(repo)

	n, err := svc.DeleteByPatient(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, repo.items, 1)
	require.Equal(t, "b", repo.items[0].ID)

	require.NoError(t, svc.Delete(context.Background(), "b"))
	require.Empty(t, repo.items)
}

func TestService_ListProjects(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput("10:00:00"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validInput("10:00:00"))
	require.NoError(t, err)

	proj, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, proj.TotalCount)
	require.Len(t, proj.Groups, 1)
	require.Equal(t, "2030-03-04-10:00:00", proj.Groups[0].Key)
	require.Equal(t, "Ana", *proj.Groups[0].Items[0].PacientName)
}
