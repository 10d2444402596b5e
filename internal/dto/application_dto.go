package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateApplicationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description"`
}

type UpdateApplicationRequest struct {
	Id          uuid.UUID
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
	IsPaused    *bool  `json:"is_paused"`
}

type ApplicationResponse struct {
	Id          uuid.UUID `json:"id"`
	ApiKey      string    `json:"api_key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	IsPaused    bool      `json:"is_paused"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
