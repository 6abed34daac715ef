package patients

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-scheduling/internal/platform/validation"

	"github.com/stretchr/testify/require"
)

type testRepo struct {
	items []Patient
}

func (r *testRepo) Insert(_ context.Context, p Patient) error {
	r.items = append(r.items, p)
	return nil
}

func (r *testRepo) List(_ context.Context) ([]Patient, error) {
	return append([]Patient(nil), r.items...), nil
}

func (r *testRepo) ReplaceAll(_ context.Context, ps []Patient) error {
	r.items = append([]Patient(nil), ps...)
	return nil
}

func (r *testRepo) DeleteByID(_ context.Context, id string) error {
	out := r.items[:0]
	for _, p := range r.items {
		if p.ID != id {
			out = append(out, p)
		}
	}
	r.items = out
	return nil
}

type fakeCascade struct {
	calls []string
	err   error
}

func (c *fakeCascade) DeleteByPatient(_ context.Context, id string) (int, error) {
	c.calls = append(c.calls, id)
	return 3, c.err
}

var now = time.Date(2026, time.October, 19, 15, 0, 0, 0, time.UTC)

func newTestService(repo Repository, cascade ScheduleCascade) *Service {
	return NewService(repo, cascade,
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string { return "3f2a9c1b" }),
	)
}

func TestService_Create(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo, nil)

	p, err := svc.Create(context.Background(), CreateInput{FullName: "  Ana Souza ", BirthDate: "1994-06-16"})
	require.NoError(t, err)
	require.Equal(t, "3f2a9c1b", p.ID)
	require.Equal(t, "Ana Souza", p.FullName)
	require.True(t, time.Date(1994, 6, 16, 0, 0, 0, 0, time.UTC).Equal(p.BirthDate))
	require.Len(t, repo.items, 1)
}

func TestService_CreateBirthDateBounds(t *testing.T) {
	svc := newTestService(&testRepo{}, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{FullName: "Old", BirthDate: "1875-01-01"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{FullName: "Today", BirthDate: "2026-10-19T15:00:00Z"})
	require.NoError(t, err)

	cases := map[string]CreateInput{
		"too old":    {FullName: "X", BirthDate: "1874-12-31"},
		"future":     {FullName: "X", BirthDate: "2026-10-20"},
		"unparsable": {FullName: "X", BirthDate: "16/06/1994"},
		"missing":    {FullName: "X"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in)
			verr, ok := validation.AsError(err)
			require.True(t, ok)
			require.Equal(t, "birthDate", verr.Issues[0].Path)
		})
	}
}

func TestService_CreateBlankName(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), CreateInput{FullName: "   ", BirthDate: "1990-01-01"})
	verr, ok := validation.AsError(err)
	require.True(t, ok)
	require.Equal(t, "fullName", verr.Issues[0].Path)
	require.Empty(t, repo.items)
}

func TestService_CreateReportsEveryIssue(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), CreateInput{FullName: " ", BirthDate: "1808-10-01"})
	verr, ok := validation.AsError(err)
	require.True(t, ok)
	require.Equal(t, []validation.Issue{
		{Path: "fullName", Message: "fullName must have at least one character"},
		{Path: "birthDate", Message: "birthDate must be on or after 1875-01-01"},
	}, verr.Issues)
	require.Empty(t, repo.items)

	_, err = svc.Create(context.Background(), CreateInput{FullName: "Ana", BirthDate: "  "})
	verr, ok = validation.AsError(err)
	require.True(t, ok)
	require.Equal(t, []validation.Issue{{Path: "birthDate", Message: "birthDate is required"}}, verr.Issues)
}

func TestService_UpdateMerge(t *testing.T) {
	old := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &testRepo{items: []Patient{
		{ID: "a", FullName: "Ana", BirthDate: old},
		{ID: "b", FullName: "Beto", BirthDate: old},
	}}
	svc := newTestService(repo, nil)
	ctx := context.Background()

	nbd := time.Date(1991, 2, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Update(ctx, "b", UpdateInput{FullName: "Roberto", BirthDate: nbd}))
	require.Equal(t, []Patient{
		{ID: "a", FullName: "Ana", BirthDate: old},
		{ID: "b", FullName: "Roberto", BirthDate: nbd},
	}, repo.items)

	before := append([]Patient(nil), repo.items...)
	require.NoError(t, svc.Update(ctx, "zzz", UpdateInput{FullName: "Nadie"}))
	require.Equal(t, before, repo.items)
}

func TestService_DeleteCascades(t *testing.T) {
	repo := &testRepo{items: []Patient{{ID: "a"}, {ID: "b"}}}
	cascade := &fakeCascade{}
	svc := newTestService(repo, cascade)

	require.NoError(t, svc.Delete(context.Background(), "a"))
	require.Equal(t, []string{"a"}, cascade.calls)
	require.Equal(t, []Patient{{ID: "b"}}, repo.items)
}

func TestService_DeleteCascadeFailureKeepsPatientRemoved(t *testing.T) {
	repo := &testRepo{items: []Patient{{ID: "a"}}}
	boom := errors.New("store down")
	svc := newTestService(repo, &fakeCascade{err: boom})

	err := svc.Delete(context.Background(), "a")
	require.ErrorIs(t, err, boom)
	require.Empty(t, repo.items)
}
