package request

// PositionQuery carries the device fix a client may forward with a request.
type PositionQuery struct {
	Latitude  *float64 `form:"lat" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `form:"lng" binding:"omitempty,min=-180,max=180"`
	Accuracy  *float64 `form:"accuracy" binding:"omitempty,min=0"`
}

type MapViewRequest struct {
	PositionQuery
	CenterLat *float64 `form:"center_lat" binding:"omitempty,min=-90,max=90"`
	CenterLng *float64 `form:"center_lng" binding:"omitempty,min=-180,max=180"`
	Radius    *float64 `form:"radius" binding:"omitempty,gt=0"`
	Layers    string   `form:"layers"`
	Category  string   `form:"category" binding:"omitempty,oneof=missing found rescue"`
	Species   string   `form:"species" binding:"omitempty,oneof=dog cat other"`
	Type      string   `form:"type" binding:"omitempty,oneof=hospital grooming"`
	OpenNow   bool     `form:"open_now"`
	Limit     int      `form:"limit" binding:"omitempty,min=1,max=500"`
}

type ZoomRequest struct {
	Radius float64 `form:"radius" binding:"required"`
}

type UpdateProfileRequest struct {
	SearchRadius *float64 `json:"search_radius" binding:"omitempty,gt=0"`
	HomeLat      *float64 `json:"home_latitude" binding:"omitempty,min=-90,max=90"`
	HomeLng      *float64 `json:"home_longitude" binding:"omitempty,min=-180,max=180"`
	ClearHome    bool     `json:"clear_home"`
}
