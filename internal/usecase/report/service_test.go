package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/mocks"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/report"
)

var daejeon = valueobject.NewGeoPoint(36.3504, 127.3845)

type fixture struct {
	reportRepo *mocks.MockReportRepository
	photoRepo  *mocks.MockPhotoRepository
	events     *mocks.MockEventPublisher
	svc        *report.Service
	observed   []proximity.FilterStats
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		reportRepo: mocks.NewMockReportRepository(ctrl),
		photoRepo:  mocks.NewMockPhotoRepository(ctrl),
		events:     mocks.NewMockEventPublisher(ctrl),
	}
	f.svc = report.NewService(f.reportRepo, f.photoRepo, f.events, report.Config{
		MaxCandidates: 50,
		ObserveFilter: func(s proximity.FilterStats) { f.observed = append(f.observed, s) },
	})
	return f
}

func details() entity.ReportDetails {
	return entity.ReportDetails{
		Category:    entity.CategoryMissing,
		Species:     entity.SpeciesDog,
		Breed:       "jindo",
		Name:        "Baduk",
		Description: "white, red collar",
		Location:    daejeon,
	}
}

// northOf returns a point roughly meters north of p.
func northOf(p valueobject.GeoPoint, meters float64) valueobject.GeoPoint {
	return valueobject.NewGeoPoint(p.Latitude+meters/111195.0, p.Longitude)
}

func TestService_Create(t *testing.T) {
	t.Run("creates active report and publishes", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		userID := uuid.New()

		f.reportRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		f.events.EXPECT().PublishReportCreated(ctx, gomock.Any()).Return(nil)

		r, err := f.svc.Create(ctx, report.CreateInput{UserID: userID, Details: details()})

		require.NoError(t, err)
		assert.Equal(t, userID, r.UserID)
		assert.Equal(t, entity.StatusActive, r.Status)
		assert.False(t, r.OccurredAt.IsZero())
	})

	t.Run("publish failure does not fail create", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		f.reportRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		f.events.EXPECT().PublishReportCreated(ctx, gomock.Any()).Return(errors.New("nats down"))

		r, err := f.svc.Create(ctx, report.CreateInput{UserID: uuid.New(), Details: details()})

		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(d *entity.ReportDetails)
			want   error
		}{
			{"category", func(d *entity.ReportDetails) { d.Category = "lost" }, domain.ErrInvalidCategory},
			{"species", func(d *entity.ReportDetails) { d.Species = "parrot" }, domain.ErrInvalidSpecies},
			{"location", func(d *entity.ReportDetails) { d.Location = valueobject.NewGeoPoint(91, 0) }, domain.ErrInvalidLocation},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				d := details()
				tt.mutate(&d)

				r, err := f.svc.Create(context.Background(), report.CreateInput{UserID: uuid.New(), Details: d})

				assert.Nil(t, r)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})
}

func TestService_GetByID(t *testing.T) {
	t.Run("counts view and loads photos", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		r := entity.NewReport(uuid.New(), details())
		photos := []entity.Photo{{ID: uuid.New(), ReportID: r.ID}}

		f.reportRepo.EXPECT().GetByID(ctx, r.ID).Return(r, nil)
		f.reportRepo.EXPECT().IncrementViews(ctx, r.ID).Return(nil)
		f.photoRepo.EXPECT().GetByReportID(ctx, r.ID).Return(photos, nil)

		got, err := f.svc.GetByID(ctx, r.ID)

		require.NoError(t, err)
		assert.Equal(t, 1, got.Views)
		assert.Len(t, got.Photos, 1)
	})

	t.Run("deleted report is not found", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		r := entity.NewReport(uuid.New(), details())
		now := time.Now()
		r.DeletedAt = &now

		f.reportRepo.EXPECT().GetByID(ctx, r.ID).Return(r, nil)

		_, err := f.svc.GetByID(ctx, r.ID)

		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})
}

func TestService_List(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		category := entity.CategoryFound
		info := &pagination.Info{Page: 2, PerPage: 10}

		f.reportRepo.EXPECT().List(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, params repository.ReportListParams) ([]entity.Report, *pagination.Info, error) {
				assert.Equal(t, 2, params.Pagination.Page)
				assert.Equal(t, 10, params.Pagination.PerPage)
				assert.Equal(t, &category, params.Filter.Category)
				assert.Equal(t, "jindo", params.Filter.Search)
				return []entity.Report{}, info, nil
			})

		reports, got, err := f.svc.List(ctx, report.ListInput{Page: 2, PerPage: 10, Category: &category, Search: "  jindo "})

		require.NoError(t, err)
		assert.Empty(t, reports)
		assert.Equal(t, info, got)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newFixture(t)
		status := entity.ReportStatus("lost")

		_, _, err := f.svc.List(context.Background(), report.ListInput{Status: &status})

		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("mine filters by owner", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		userID := uuid.New()

		f.reportRepo.EXPECT().List(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, params repository.ReportListParams) ([]entity.Report, *pagination.Info, error) {
				require.NotNil(t, params.Filter.UserID)
				assert.Equal(t, userID, *params.Filter.UserID)
				return nil, &pagination.Info{}, nil
			})

		_, _, err := f.svc.ListMine(ctx, userID, 1, 20)

		require.NoError(t, err)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("owner updates fields", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		r := entity.NewReport(uuid.New(), details())
		name := "Dubu"
		loc := valueobject.NewGeoPoint(37.5665, 126.978)

		f.reportRepo.EXPECT().GetByID(ctx, r.ID).Return(r, nil)
		f.reportRepo.EXPECT().Update(ctx, r).Return(nil)
		f.photoRepo.EXPECT().GetByReportID(ctx, r.ID).Return(nil, nil)

		got, err := f.svc.Update(ctx, r.UserID, r.ID, report.UpdateInput{Name: &name, Location: &loc})

		require.NoError(t, err)
		assert.Equal(t, "Dubu", got.Name)
		assert.Equal(t, loc, got.Location)
		assert.Equal(t, "jindo", got.Breed)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		r := entity.NewReport(uuid.New(), details())

		f.reportRepo.EXPECT().GetByID(ctx, r.ID).Return(r, nil)

		_, err := f.svc.Update(ctx, uuid.New(), r.ID, report.UpdateInput{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("invalid location is rejected before saving", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		r := entity.NewReport(uuid.New(), details())
		loc := valueobject.NewGeoPoint(0, 200)

		f.reportRepo.EXPECT().GetByID(ctx, r.ID).Return(r, nil)

		_, err := f.svc.Update(ctx, r.UserID, r.ID, report.UpdateInput{Location: &loc})

		assert.ErrorIs(t, err, domain.ErrInvalidLocation)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("changes status and publishes", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		r := entity.NewReport(uuid.New(), details())

		f.reportRepo.EXPECT().GetByID(ctx, r.ID).Return(r, nil)
		f.reportRepo.EXPECT().Update(ctx, r).Return(nil)
		f.events.EXPECT().PublishReportStatusChanged(ctx, r).Return(nil)

		got, err := f.svc.UpdateStatus(ctx, r.UserID, r.ID, entity.StatusResolved)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusResolved, got.Status)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		r := entity.NewReport(uuid.New(), details())

		f.reportRepo.EXPECT().GetByID(ctx, r.ID).Return(r, nil)

		got, err := f.svc.UpdateStatus(ctx, r.UserID, r.ID, entity.StatusActive)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusActive, got.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "archived")

		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		r := entity.NewReport(uuid.New(), details())

		f.reportRepo.EXPECT().GetByID(ctx, r.ID).Return(r, nil)
		f.reportRepo.EXPECT().SoftDelete(ctx, r.ID).Return(nil)

		require.NoError(t, f.svc.Delete(ctx, r.UserID, r.ID))
	})

	t.Run("missing report", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		id := uuid.New()

		f.reportRepo.EXPECT().GetByID(ctx, id).Return(nil, domain.ErrReportNotFound)

		assert.ErrorIs(t, f.svc.Delete(ctx, uuid.New(), id), domain.ErrReportNotFound)
	})
}

func TestService_Nearby(t *testing.T) {
	t.Run("keeps records inside the radius nearest first", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		search, err := proximity.NewSearchContext(daejeon, 10000)
		require.NoError(t, err)

		far := entity.NewReport(uuid.New(), details())
		far.Location = northOf(daejeon, 15000)
		mid := entity.NewReport(uuid.New(), details())
		mid.Location = northOf(daejeon, 5000)
		here := entity.NewReport(uuid.New(), details())
		unlocatable := entity.NewReport(uuid.New(), details())
		unlocatable.Location = valueobject.NewGeoPoint(120, 0)

		f.reportRepo.EXPECT().ListCandidates(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q repository.CandidateQuery, filter repository.ReportFilter) ([]entity.Report, error) {
				assert.Equal(t, daejeon, q.Origin)
				assert.NotNil(t, q.Box)
				assert.Equal(t, 50, q.Limit)
				require.NotNil(t, filter.Status)
				assert.Equal(t, entity.StatusActive, *filter.Status)
				return []entity.Report{*far, *mid, *unlocatable, *here}, nil
			})
		f.photoRepo.EXPECT().GetByReportID(ctx, gomock.Any()).Return(nil, nil).Times(2)

		matches, err := f.svc.Nearby(ctx, report.NearbyInput{Search: search})

		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, here.ID, matches[0].Record.ID)
		assert.Equal(t, mid.ID, matches[1].Record.ID)
		assert.InDelta(t, 5000, matches[1].DistanceMeters, 10)

		require.Len(t, f.observed, 1)
		assert.Equal(t, proximity.FilterStats{Candidates: 4, Matched: 2, Unlocatable: 1}, f.observed[0])
	})

	t.Run("equal distances prefer newer reports", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		search, _ := proximity.NewSearchContext(daejeon, 1000)

		older := entity.NewReport(uuid.New(), details())
		older.CreatedAt = time.Now().Add(-time.Hour)
		newer := entity.NewReport(uuid.New(), details())

		f.reportRepo.EXPECT().ListCandidates(ctx, gomock.Any(), gomock.Any()).Return([]entity.Report{*older, *newer}, nil)
		f.photoRepo.EXPECT().GetByReportID(ctx, gomock.Any()).Return(nil, nil).Times(1)

		matches, err := f.svc.Nearby(ctx, report.NearbyInput{Search: search, Limit: 1})

		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, newer.ID, matches[0].Record.ID)
	})

	t.Run("invalid radius fails before querying", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Nearby(context.Background(), report.NearbyInput{
			Search: proximity.SearchContext{Origin: daejeon, RadiusMeters: 0},
		})

		assert.ErrorIs(t, err, domain.ErrInvalidRadius)
	})
}
