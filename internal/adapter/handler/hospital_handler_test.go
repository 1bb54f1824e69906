package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/mocks"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/hospital"
)

func sampleHospital() *entity.Hospital {
	loc := valueobject.NewGeoPoint(36.3504, 127.3845)
	h := entity.NewHospital(entity.HospitalTypeHospital, "Daejeon Animal Clinic", &loc)
	h.PlaceID = "place-1"
	return h
}

func TestHospitalHandler_List(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hospitalSvc := mocks.NewMockHospitalService(ctrl)
		h := handler.NewHospitalHandler(hospitalSvc)

		router := setupRouter()
		router.GET("/hospitals", h.List)

		hospitalSvc.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in hospital.ListInput) ([]entity.Hospital, *pagination.Info, error) {
				require.NotNil(t, in.Filter.Type)
				assert.Equal(t, entity.HospitalTypeGrooming, *in.Filter.Type)
				require.NotNil(t, in.Filter.Is24Hours)
				assert.True(t, *in.Filter.Is24Hours)
				assert.True(t, in.Filter.OpenNow)
				assert.Nil(t, in.Filter.PriceRange)
				return []entity.Hospital{*sampleHospital()}, pagination.NewInfo(pagination.NewParams(1, 20), 1), nil
			})
		hospitalSvc.EXPECT().IsOpenNow(gomock.Any()).Return(true)

		req := httptest.NewRequest(http.MethodGet, "/hospitals?type=grooming&is_24_hours=true&open_now=true", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		items := resp["hospitals"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, true, items[0].(map[string]any)["open_now"])
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hospitalSvc := mocks.NewMockHospitalService(ctrl)
		h := handler.NewHospitalHandler(hospitalSvc)

		router := setupRouter()
		router.GET("/hospitals", h.List)

		req := httptest.NewRequest(http.MethodGet, "/hospitals?type=zoo", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHospitalHandler_Get(t *testing.T) {
	t.Run("returns hospital", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hospitalSvc := mocks.NewMockHospitalService(ctrl)
		h := handler.NewHospitalHandler(hospitalSvc)

		router := setupRouter()
		router.GET("/hospitals/:id", h.Get)

		found := sampleHospital()
		hospitalSvc.EXPECT().GetByID(gomock.Any(), found.ID).Return(found, nil)
		hospitalSvc.EXPECT().IsOpenNow(found).Return(false)

		req := httptest.NewRequest(http.MethodGet, "/hospitals/"+found.ID.String(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "Daejeon Animal Clinic", resp["name"])
		assert.Equal(t, false, resp["open_now"])
	})

	t.Run("returns not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hospitalSvc := mocks.NewMockHospitalService(ctrl)
		h := handler.NewHospitalHandler(hospitalSvc)

		router := setupRouter()
		router.GET("/hospitals/:id", h.Get)

		hospitalSvc.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, domain.ErrHospitalNotFound)

		req := httptest.NewRequest(http.MethodGet, "/hospitals/"+uuid.NewString(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHospitalHandler_Import(t *testing.T) {
	t.Run("creates a new place", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hospitalSvc := mocks.NewMockHospitalService(ctrl)
		h := handler.NewHospitalHandler(hospitalSvc)

		router := setupRouter()
		router.POST("/hospitals/import", h.Import)

		imported := sampleHospital()
		hospitalSvc.EXPECT().ImportPlace(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in hospital.PlaceInput) (*entity.Hospital, bool, error) {
				assert.Equal(t, "place-1", in.PlaceID)
				lat, ok := in.Latitude.Float64()
				assert.True(t, ok)
				assert.InDelta(t, 36.3504, lat, 1e-9)
				_, ok = in.Longitude.Float64()
				assert.True(t, ok)
				return imported, true, nil
			})
		hospitalSvc.EXPECT().IsOpenNow(imported).Return(false)

		body := `{"place_id":"place-1","name":"Daejeon Animal Clinic","latitude":"36.3504","longitude":127.3845}`
		req := httptest.NewRequest(http.MethodPost, "/hospitals/import", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, true, resp["created"])
	})

	t.Run("returns the stored place", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hospitalSvc := mocks.NewMockHospitalService(ctrl)
		h := handler.NewHospitalHandler(hospitalSvc)

		router := setupRouter()
		router.POST("/hospitals/import", h.Import)

		existing := sampleHospital()
		hospitalSvc.EXPECT().ImportPlace(gomock.Any(), gomock.Any()).Return(existing, false, nil)
		hospitalSvc.EXPECT().IsOpenNow(existing).Return(false)

		body := `{"place_id":"place-1","name":"Daejeon Animal Clinic","latitude":36.3504,"longitude":127.3845}`
		req := httptest.NewRequest(http.MethodPost, "/hospitals/import", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("maps invalid places to bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hospitalSvc := mocks.NewMockHospitalService(ctrl)
		h := handler.NewHospitalHandler(hospitalSvc)

		router := setupRouter()
		router.POST("/hospitals/import", h.Import)

		hospitalSvc.EXPECT().ImportPlace(gomock.Any(), gomock.Any()).Return(nil, false, hospital.ErrInvalidHospital)

		body := `{"place_id":"place-1","name":"Nowhere","latitude":null,"longitude":null}`
		req := httptest.NewRequest(http.MethodPost, "/hospitals/import", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
