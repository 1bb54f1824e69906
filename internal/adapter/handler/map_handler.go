package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/location"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/mapview"
)

type MapHandler struct {
	mapSvc    MapService
	providers ProviderFactory
	openNow   func(*entity.Hospital) bool
}

func NewMapHandler(mapSvc MapService, providers ProviderFactory, hospitalSvc HospitalService) *MapHandler {
	return &MapHandler{
		mapSvc:    mapSvc,
		providers: providers,
		openNow:   hospitalSvc.IsOpenNow,
	}
}

// Locate godoc
//
//	@Summary		Resolve the caller's position
//	@Description	Uses the forwarded device fix, then the client address, then the default centre
//	@Tags			map
//	@Produce		json
//	@Param			lat			query		number	false	"Device latitude"
//	@Param			lng			query		number	false	"Device longitude"
//	@Param			accuracy	query		number	false	"Device accuracy in meters"
//	@Success		200			{object}	response.LocateResponse
//	@Failure		400			{object}	httputil.ErrorResponse
//	@Router			/map/locate [get]
func (h *MapHandler) Locate(c *gin.Context) {
	var req request.PositionQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	res := h.mapSvc.Locate(c.Request.Context(), h.provider(c, req))
	httputil.OK(c, response.LocateFromResolution(res))
}

// View godoc
//
//	@Summary		Map view
//	@Description	Reports and hospitals within the radius as a GeoJSON FeatureCollection
//	@Tags			map
//	@Produce		json
//	@Param			center_lat	query		number	false	"Explicit centre latitude"
//	@Param			center_lng	query		number	false	"Explicit centre longitude"
//	@Param			lat			query		number	false	"Device latitude"
//	@Param			lng			query		number	false	"Device longitude"
//	@Param			radius		query		number	false	"Radius in meters"
//	@Param			layers		query		string	false	"Comma separated: reports,hospitals"
//	@Param			category	query		string	false	"Report category"
//	@Param			species		query		string	false	"Report species"
//	@Param			type		query		string	false	"Hospital type"
//	@Param			open_now	query		bool	false	"Only hospitals open now"
//	@Param			limit		query		int		false	"Maximum features per layer"
//	@Success		200			{object}	object
//	@Failure		400			{object}	httputil.ErrorResponse
//	@Router			/map/view [get]
func (h *MapHandler) View(c *gin.Context) {
	view, ok := h.view(c, nil)
	if !ok {
		return
	}

	httputil.OK(c, response.FeatureCollectionFromView(view, h.openNow))
}

// NearbyReports godoc
//
//	@Summary	Reports near a point
//	@Tags		reports
//	@Produce	json
//	@Param		center_lat	query		number	false	"Explicit centre latitude"
//	@Param		center_lng	query		number	false	"Explicit centre longitude"
//	@Param		radius		query		number	false	"Radius in meters"
//	@Param		category	query		string	false	"Report category"
//	@Param		species		query		string	false	"Report species"
//	@Param		limit		query		int		false	"Maximum results"
//	@Success	200			{object}	response.NearbyReportsResponse
//	@Failure	400			{object}	httputil.ErrorResponse
//	@Router		/reports/nearby [get]
func (h *MapHandler) NearbyReports(c *gin.Context) {
	view, ok := h.view(c, []mapview.Layer{mapview.LayerReports})
	if !ok {
		return
	}

	httputil.OK(c, response.NearbyReportsResponse{
		Search:  response.SearchFromView(view),
		Reports: response.NearbyReportsFromMatches(view.Reports),
	})
}

// NearbyHospitals godoc
//
//	@Summary	Hospitals near a point
//	@Tags		hospitals
//	@Produce	json
//	@Param		center_lat	query		number	false	"Explicit centre latitude"
//	@Param		center_lng	query		number	false	"Explicit centre longitude"
//	@Param		radius		query		number	false	"Radius in meters"
//	@Param		type		query		string	false	"hospital or grooming"
//	@Param		open_now	query		bool	false	"Only places open now"
//	@Param		limit		query		int		false	"Maximum results"
//	@Success	200			{object}	response.NearbyHospitalsResponse
//	@Failure	400			{object}	httputil.ErrorResponse
//	@Router		/hospitals/nearby [get]
func (h *MapHandler) NearbyHospitals(c *gin.Context) {
	view, ok := h.view(c, []mapview.Layer{mapview.LayerHospitals})
	if !ok {
		return
	}

	httputil.OK(c, response.NearbyHospitalsResponse{
		Search:    response.SearchFromView(view),
		Hospitals: response.NearbyHospitalsFromMatches(view.Hospitals, h.openNow),
	})
}

// Zoom godoc
//
//	@Summary	Zoom level for a radius
//	@Tags		map
//	@Produce	json
//	@Param		radius	query		number	true	"Radius in meters"
//	@Success	200		{object}	response.ZoomResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Router		/map/zoom [get]
func (h *MapHandler) Zoom(c *gin.Context) {
	var req request.ZoomRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	zoom, err := h.mapSvc.ZoomLevel(req.Radius)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OK(c, response.ZoomResponse{RadiusMeters: req.Radius, Zoom: zoom})
}

// view binds the shared query and runs the map search. A nil layers slice
// takes the layers from the query.
func (h *MapHandler) view(c *gin.Context, layers []mapview.Layer) (*mapview.View, bool) {
	var req request.MapViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return nil, false
	}

	if (req.CenterLat == nil) != (req.CenterLng == nil) {
		httputil.HandleError(c, apperror.InvalidLocation("center_lat and center_lng must be sent together"))
		return nil, false
	}

	if layers == nil {
		layers = parseLayers(req.Layers)
	}

	input := mapview.Input{
		UserID:  httputil.GetUserID(c),
		Radius:  req.Radius,
		Layers:  layers,
		OpenNow: req.OpenNow,
		Limit:   req.Limit,
	}
	if req.CenterLat != nil {
		origin := valueobject.NewGeoPoint(*req.CenterLat, *req.CenterLng)
		input.Origin = &origin
	} else {
		input.Provider = h.provider(c, req.PositionQuery)
	}
	if req.Category != "" {
		category := entity.ReportCategory(req.Category)
		input.ReportCategory = &category
	}
	if req.Species != "" {
		species := entity.Species(req.Species)
		input.Species = &species
	}
	if req.Type != "" {
		t := entity.HospitalType(req.Type)
		input.HospitalType = &t
	}

	view, err := h.mapSvc.View(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return view, true
}

func (h *MapHandler) provider(c *gin.Context, q request.PositionQuery) location.Provider {
	var fix *location.Fix
	if q.Latitude != nil && q.Longitude != nil {
		fix = &location.Fix{
			Point:    valueobject.NewGeoPoint(*q.Latitude, *q.Longitude),
			Accuracy: q.Accuracy,
		}
	}
	return h.providers.ForClient(fix, c.ClientIP())
}

func parseLayers(raw string) []mapview.Layer {
	var layers []mapview.Layer
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			layers = append(layers, mapview.Layer(part))
		}
	}
	return layers
}
