package request

import "time"

type CreateReportRequest struct {
	Category    string     `json:"category" binding:"required,oneof=missing found rescue"`
	Species     string     `json:"species" binding:"required,oneof=dog cat other"`
	Breed       string     `json:"breed" binding:"max=100"`
	Name        string     `json:"name" binding:"max=100"`
	Description string     `json:"description" binding:"max=2000"`
	Latitude    *float64   `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude   *float64   `json:"longitude" binding:"required,min=-180,max=180"`
	Address     string     `json:"address" binding:"max=255"`
	OccurredAt  *time.Time `json:"occurred_at"`
	Contact     string     `json:"contact" binding:"max=100"`
}

type UpdateReportRequest struct {
	Category    *string    `json:"category" binding:"omitempty,oneof=missing found rescue"`
	Species     *string    `json:"species" binding:"omitempty,oneof=dog cat other"`
	Breed       *string    `json:"breed" binding:"omitempty,max=100"`
	Name        *string    `json:"name" binding:"omitempty,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Latitude    *float64   `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64   `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Address     *string    `json:"address" binding:"omitempty,max=255"`
	OccurredAt  *time.Time `json:"occurred_at"`
	Contact     *string    `json:"contact" binding:"omitempty,max=100"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active resolved closed"`
}

type ListReportsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PerPage  int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	Category string `form:"category" binding:"omitempty,oneof=missing found rescue"`
	Status   string `form:"status" binding:"omitempty,oneof=active resolved closed"`
	Species  string `form:"species" binding:"omitempty,oneof=dog cat other"`
	Query    string `form:"q" binding:"omitempty,max=100"`
}
