package trip_test

import (
	"context"
	"testing"
	"time"

	"go-portal/internal/shared/clock"
	"go-portal/internal/shared/contextutil"
	"go-portal/internal/trip"
	triperrors "go-portal/internal/trip/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTripRepo struct {
	CreateFn         func(ctx context.Context, report *trip.TripReport) error
	FindByIDFn       func(ctx context.Context, id string) (*trip.TripReport, error)
	FindAllByOwnerFn func(ctx context.Context, ownerID string) ([]trip.TripReport, error)
	UpdateFn         func(ctx context.Context, report *trip.TripReport) error
}

func (f *fakeTripRepo) Create(ctx context.Context, report *trip.TripReport) error {
	return f.CreateFn(ctx, report)
}

func (f *fakeTripRepo) FindByID(ctx context.Context, id string) (*trip.TripReport, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeTripRepo) FindAllByOwner(ctx context.Context, ownerID string) ([]trip.TripReport, error) {
	return f.FindAllByOwnerFn(ctx, ownerID)
}

func (f *fakeTripRepo) Update(ctx context.Context, report *trip.TripReport) error {
	return f.UpdateFn(ctx, report)
}

var testNow = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

func tripActor() contextutil.Actor {
	return contextutil.Actor{ID: uuid.NewString(), Role: "EMPLOYEE", Name: "Budi"}
}

func TestCreateTrip(t *testing.T) {
	t.Run("success within filing window", func(t *testing.T) {
		repo := &fakeTripRepo{
			CreateFn: func(ctx context.Context, report *trip.TripReport) error {
				assert.Equal(t, trip.StatusDraft, report.Status)
				return nil
			},
		}

		svc := trip.NewService(repo, clock.Fixed{T: testNow})
		resp, err := svc.Create(context.Background(), tripActor(), trip.CreateTripRequest{
			Destination: "Surabaya",
			Purpose:     "client onboarding",
			StartDate:   "2026-08-15",
			EndDate:     "2026-08-17",
			Outcome:     "two prospects visited",
		})

		assert.NoError(t, err)
		assert.Equal(t, trip.StatusDraft, resp.Status)
		assert.Equal(t, "two prospects visited", resp.Outcome)
	})

	t.Run("success trip ended exactly ten days ago", func(t *testing.T) {
		repo := &fakeTripRepo{
			CreateFn: func(ctx context.Context, report *trip.TripReport) error { return nil },
		}

		svc := trip.NewService(repo, clock.Fixed{T: testNow})
		_, err := svc.Create(context.Background(), tripActor(), trip.CreateTripRequest{
			Destination: "Bandung",
			Purpose:     "training",
			StartDate:   "2026-08-08",
			EndDate:     "2026-08-10",
		})

		assert.NoError(t, err)
	})

	t.Run("negative trip ended eleven days ago", func(t *testing.T) {
		svc := trip.NewService(&fakeTripRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Create(context.Background(), tripActor(), trip.CreateTripRequest{
			Destination: "Bandung",
			Purpose:     "training",
			StartDate:   "2026-08-07",
			EndDate:     "2026-08-09",
		})

		assert.ErrorIs(t, err, triperrors.ErrFilingWindowExpired)
	})

	t.Run("negative trip not yet over", func(t *testing.T) {
		svc := trip.NewService(&fakeTripRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Create(context.Background(), tripActor(), trip.CreateTripRequest{
			Destination: "Jakarta",
			Purpose:     "conference",
			StartDate:   "2026-08-19",
			EndDate:     "2026-08-22",
		})

		assert.ErrorIs(t, err, triperrors.ErrInvalidTripDates)
	})
}

func TestUpdateTrip(t *testing.T) {
	tripID := uuid.New()
	actor := tripActor()
	ownerID := uuid.MustParse(actor.ID)

	draft := func() *trip.TripReport {
		return &trip.TripReport{
			ID:          tripID,
			OwnerID:     ownerID,
			Destination: "Surabaya",
			Purpose:     "client onboarding",
			StartDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
			Status:      trip.StatusDraft,
		}
	}

	t.Run("success", func(t *testing.T) {
		repo := &fakeTripRepo{
			FindByIDFn: func(ctx context.Context, id string) (*trip.TripReport, error) {
				return draft(), nil
			},
			UpdateFn: func(ctx context.Context, report *trip.TripReport) error {
				assert.Equal(t, "Malang", report.Destination)
				return nil
			},
		}

		svc := trip.NewService(repo, clock.Fixed{T: testNow})
		resp, err := svc.Update(context.Background(), actor, tripID.String(), trip.UpdateTripRequest{
			Destination: "Malang",
			Purpose:     "revised itinerary",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Malang", resp.Destination)
	})

	t.Run("success outcome written on draft", func(t *testing.T) {
		repo := &fakeTripRepo{
			FindByIDFn: func(ctx context.Context, id string) (*trip.TripReport, error) {
				return draft(), nil
			},
			UpdateFn: func(ctx context.Context, report *trip.TripReport) error {
				assert.Equal(t, "contract signed with two branches", report.Outcome)
				return nil
			},
		}

		svc := trip.NewService(repo, clock.Fixed{T: testNow})
		resp, err := svc.Update(context.Background(), actor, tripID.String(), trip.UpdateTripRequest{
			Destination: "Surabaya",
			Purpose:     "client onboarding",
			Outcome:     "contract signed with two branches",
		})

		assert.NoError(t, err)
		assert.Equal(t, "contract signed with two branches", resp.Outcome)
	})

	t.Run("negative submitted report locked", func(t *testing.T) {
		submitted := draft()
		submitted.Status = trip.StatusSubmitted

		repo := &fakeTripRepo{
			FindByIDFn: func(ctx context.Context, id string) (*trip.TripReport, error) {
				return submitted, nil
			},
		}

		svc := trip.NewService(repo, clock.Fixed{T: testNow})
		_, err := svc.Update(context.Background(), actor, tripID.String(), trip.UpdateTripRequest{
			Destination: "Malang",
			Purpose:     "too late",
		})

		assert.ErrorIs(t, err, triperrors.ErrNotDraft)
	})

	t.Run("negative window closed on old draft", func(t *testing.T) {
		old := draft()
		old.EndDate = time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)

		repo := &fakeTripRepo{
			FindByIDFn: func(ctx context.Context, id string) (*trip.TripReport, error) {
				return old, nil
			},
		}

		svc := trip.NewService(repo, clock.Fixed{T: testNow})
		_, err := svc.Update(context.Background(), actor, tripID.String(), trip.UpdateTripRequest{
			Destination: "Malang",
			Purpose:     "stale draft",
		})

		assert.ErrorIs(t, err, triperrors.ErrFilingWindowExpired)
	})

	t.Run("negative someone else's report", func(t *testing.T) {
		repo := &fakeTripRepo{
			FindByIDFn: func(ctx context.Context, id string) (*trip.TripReport, error) {
				other := draft()
				other.OwnerID = uuid.New()
				return other, nil
			},
		}

		svc := trip.NewService(repo, clock.Fixed{T: testNow})
		_, err := svc.Update(context.Background(), actor, tripID.String(), trip.UpdateTripRequest{
			Destination: "Malang",
			Purpose:     "not yours",
		})

		assert.ErrorIs(t, err, triperrors.ErrTripNotFound)
	})
}

func TestSubmitTrip(t *testing.T) {
	tripID := uuid.New()
	actor := tripActor()
	ownerID := uuid.MustParse(actor.ID)

	t.Run("success", func(t *testing.T) {
		repo := &fakeTripRepo{
			FindByIDFn: func(ctx context.Context, id string) (*trip.TripReport, error) {
				return &trip.TripReport{
					ID:      tripID,
					OwnerID: ownerID,
					EndDate: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
					Status:  trip.StatusDraft,
				}, nil
			},
			UpdateFn: func(ctx context.Context, report *trip.TripReport) error {
				assert.Equal(t, trip.StatusSubmitted, report.Status)
				assert.NotNil(t, report.SubmittedAt)
				return nil
			},
		}

		svc := trip.NewService(repo, clock.Fixed{T: testNow})
		resp, err := svc.Submit(context.Background(), actor, tripID.String())

		assert.NoError(t, err)
		assert.Equal(t, trip.StatusSubmitted, resp.Status)
	})

	t.Run("negative double submit", func(t *testing.T) {
		repo := &fakeTripRepo{
			FindByIDFn: func(ctx context.Context, id string) (*trip.TripReport, error) {
				return &trip.TripReport{
					ID:      tripID,
					OwnerID: ownerID,
					EndDate: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
					Status:  trip.StatusSubmitted,
				}, nil
			},
		}

		svc := trip.NewService(repo, clock.Fixed{T: testNow})
		_, err := svc.Submit(context.Background(), actor, tripID.String())

		assert.ErrorIs(t, err, triperrors.ErrAlreadySubmitted)
	})

	t.Run("negative unknown report", func(t *testing.T) {
		repo := &fakeTripRepo{
			FindByIDFn: func(ctx context.Context, id string) (*trip.TripReport, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := trip.NewService(repo, clock.Fixed{T: testNow})
		_, err := svc.Submit(context.Background(), actor, uuid.NewString())

		assert.ErrorIs(t, err, triperrors.ErrTripNotFound)
	})
}
