package fleet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/fleet"
)

// =============================================================================
// Vehicle DTOs
// =============================================================================

// CreateVehicleRequest represents a request to register a new vehicle
type CreateVehicleRequest struct {
	RegistrationNumber string           `json:"registration_number" binding:"required,max=12"`
	Kind               string           `json:"kind" binding:"required,oneof=TRACTOR STRAIGHT_TRUCK VAN"`
	Brand              string           `json:"brand" binding:"max=100"`
	Model              string           `json:"model" binding:"max=100"`
	CapacityKg         *decimal.Decimal `json:"capacity_kg"`
	InspectionExpiry   *time.Time       `json:"inspection_expiry"`
	InsuranceExpiry    *time.Time       `json:"insurance_expiry"`
	Notes              string           `json:"notes"`
}

// UpdateVehicleRequest represents a request to update a vehicle.
// Brand, model and kind travel together; inspection and insurance
// expiry dates travel together.
type UpdateVehicleRequest struct {
	Brand            *string          `json:"brand" binding:"omitempty,max=100"`
	Model            *string          `json:"model" binding:"omitempty,max=100"`
	Kind             *string          `json:"kind" binding:"omitempty,oneof=TRACTOR STRAIGHT_TRUCK VAN"`
	CapacityKg       *decimal.Decimal `json:"capacity_kg"`
	InspectionExpiry *time.Time       `json:"inspection_expiry"`
	InsuranceExpiry  *time.Time       `json:"insurance_expiry"`
	Status           *string          `json:"status" binding:"omitempty,oneof=AVAILABLE IN_SERVICE OUT_OF_SERVICE"`
	Notes            *string          `json:"notes"`
}

// VehicleListFilter represents filter options for the vehicle list
type VehicleListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=AVAILABLE IN_SERVICE OUT_OF_SERVICE"`
	Kind     string `form:"kind" binding:"omitempty,oneof=TRACTOR STRAIGHT_TRUCK VAN"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// VehicleResponse represents a vehicle in API responses
type VehicleResponse struct {
	ID                 uuid.UUID       `json:"id"`
	TenantID           uuid.UUID       `json:"tenant_id"`
	RegistrationNumber string          `json:"registration_number"`
	Brand              string          `json:"brand,omitempty"`
	Model              string          `json:"model,omitempty"`
	Kind               string          `json:"kind"`
	CapacityKg         decimal.Decimal `json:"capacity_kg"`
	InspectionExpiry   *time.Time      `json:"inspection_expiry,omitempty"`
	InsuranceExpiry    *time.Time      `json:"insurance_expiry,omitempty"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// VehicleListItemResponse represents a list item for vehicles
type VehicleListItemResponse struct {
	ID                 uuid.UUID       `json:"id"`
	RegistrationNumber string          `json:"registration_number"`
	Brand              string          `json:"brand,omitempty"`
	Model              string          `json:"model,omitempty"`
	Kind               string          `json:"kind"`
	CapacityKg         decimal.Decimal `json:"capacity_kg"`
	Status             string          `json:"status"`
	DocumentsValid     bool            `json:"documents_valid"`
	InspectionExpiry   *time.Time      `json:"inspection_expiry,omitempty"`
	InsuranceExpiry    *time.Time      `json:"insurance_expiry,omitempty"`
}

// =============================================================================
// Trailer DTOs
// =============================================================================

// CreateTrailerRequest represents a request to register a new trailer
type CreateTrailerRequest struct {
	RegistrationNumber string           `json:"registration_number" binding:"required,max=12"`
	Kind               string           `json:"kind" binding:"required,oneof=CURTAIN BOX REEFER TIPPER"`
	CapacityKg         *decimal.Decimal `json:"capacity_kg"`
	InspectionExpiry   *time.Time       `json:"inspection_expiry"`
	InsuranceExpiry    *time.Time       `json:"insurance_expiry"`
	Notes              string           `json:"notes"`
}

// UpdateTrailerRequest represents a request to update a trailer
type UpdateTrailerRequest struct {
	Kind             *string          `json:"kind" binding:"omitempty,oneof=CURTAIN BOX REEFER TIPPER"`
	CapacityKg       *decimal.Decimal `json:"capacity_kg"`
	InspectionExpiry *time.Time       `json:"inspection_expiry"`
	InsuranceExpiry  *time.Time       `json:"insurance_expiry"`
	Status           *string          `json:"status" binding:"omitempty,oneof=AVAILABLE IN_SERVICE OUT_OF_SERVICE"`
	Notes            *string          `json:"notes"`
}

// TrailerListFilter represents filter options for the trailer list
type TrailerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=AVAILABLE IN_SERVICE OUT_OF_SERVICE"`
	Kind     string `form:"kind" binding:"omitempty,oneof=CURTAIN BOX REEFER TIPPER"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TrailerResponse represents a trailer in API responses
type TrailerResponse struct {
	ID                 uuid.UUID       `json:"id"`
	TenantID           uuid.UUID       `json:"tenant_id"`
	RegistrationNumber string          `json:"registration_number"`
	Kind               string          `json:"kind"`
	CapacityKg         decimal.Decimal `json:"capacity_kg"`
	InspectionExpiry   *time.Time      `json:"inspection_expiry,omitempty"`
	InsuranceExpiry    *time.Time      `json:"insurance_expiry,omitempty"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// TrailerListItemResponse represents a list item for trailers
type TrailerListItemResponse struct {
	ID                 uuid.UUID       `json:"id"`
	RegistrationNumber string          `json:"registration_number"`
	Kind               string          `json:"kind"`
	CapacityKg         decimal.Decimal `json:"capacity_kg"`
	Status             string          `json:"status"`
	DocumentsValid     bool            `json:"documents_valid"`
	InspectionExpiry   *time.Time      `json:"inspection_expiry,omitempty"`
	InsuranceExpiry    *time.Time      `json:"insurance_expiry,omitempty"`
}

// =============================================================================
// Driver DTOs
// =============================================================================

// CreateDriverRequest represents a request to register a new driver
type CreateDriverRequest struct {
	FirstName         string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName          string     `json:"last_name" binding:"required,min=1,max=100"`
	Phone             string     `json:"phone" binding:"max=50"`
	LicenseCategories []string   `json:"license_categories"`
	LicenseExpiry     *time.Time `json:"license_expiry"`
	Notes             string     `json:"notes"`
}

// UpdateDriverRequest represents a request to update a driver.
// Licence categories and expiry travel together.
type UpdateDriverRequest struct {
	FirstName         *string    `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName          *string    `json:"last_name" binding:"omitempty,min=1,max=100"`
	Phone             *string    `json:"phone" binding:"omitempty,max=50"`
	LicenseCategories *[]string  `json:"license_categories"`
	LicenseExpiry     *time.Time `json:"license_expiry"`
	Status            *string    `json:"status" binding:"omitempty,oneof=AVAILABLE ON_ROUTE OFF_DUTY"`
	Notes             *string    `json:"notes"`
}

// DriverListFilter represents filter options for the driver list
type DriverListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=AVAILABLE ON_ROUTE OFF_DUTY"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DriverResponse represents a driver in API responses
type DriverResponse struct {
	ID                uuid.UUID  `json:"id"`
	TenantID          uuid.UUID  `json:"tenant_id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	FullName          string     `json:"full_name"`
	Phone             string     `json:"phone,omitempty"`
	LicenseCategories []string   `json:"license_categories"`
	LicenseExpiry     *time.Time `json:"license_expiry,omitempty"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Version           int        `json:"version"`
}

// DriverListItemResponse represents a list item for drivers
type DriverListItemResponse struct {
	ID                uuid.UUID  `json:"id"`
	FullName          string     `json:"full_name"`
	Phone             string     `json:"phone,omitempty"`
	LicenseCategories []string   `json:"license_categories"`
	LicenseExpiry     *time.Time `json:"license_expiry,omitempty"`
	LicenseValid      bool       `json:"license_valid"`
	Status            string     `json:"status"`
}

// =============================================================================
// Converters
// =============================================================================

// timeOrNil maps zero (untracked) dates to null in responses
func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// timeOrCurrent applies a request date over the stored one
func timeOrCurrent(v *time.Time, current time.Time) time.Time {
	if v != nil {
		return *v
	}
	return current
}

// ToVehicleResponse converts a domain vehicle to a response DTO
func ToVehicleResponse(v *fleet.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 v.ID,
		TenantID:           v.TenantID,
		RegistrationNumber: v.RegistrationNumber,
		Brand:              v.Brand,
		Model:              v.Model,
		Kind:               string(v.Kind),
		CapacityKg:         v.CapacityKg,
		InspectionExpiry:   timeOrNil(v.InspectionExpiry),
		InsuranceExpiry:    timeOrNil(v.InsuranceExpiry),
		Status:             string(v.Status),
		Notes:              v.Notes,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		Version:            v.Version,
	}
}

// ToVehicleListItemResponses converts vehicles to list item DTOs.
// Document validity is evaluated at the reference time.
func ToVehicleListItemResponses(vehicles []fleet.Vehicle, ref time.Time) []VehicleListItemResponse {
	responses := make([]VehicleListItemResponse, len(vehicles))
	for i := range vehicles {
		v := &vehicles[i]
		responses[i] = VehicleListItemResponse{
			ID:                 v.ID,
			RegistrationNumber: v.RegistrationNumber,
			Brand:              v.Brand,
			Model:              v.Model,
			Kind:               string(v.Kind),
			CapacityKg:         v.CapacityKg,
			Status:             string(v.Status),
			DocumentsValid:     v.HasValidDocuments(ref),
			InspectionExpiry:   timeOrNil(v.InspectionExpiry),
			InsuranceExpiry:    timeOrNil(v.InsuranceExpiry),
		}
	}
	return responses
}

// ToTrailerResponse converts a domain trailer to a response DTO
func ToTrailerResponse(t *fleet.Trailer) TrailerResponse {
	return TrailerResponse{
		ID:                 t.ID,
		TenantID:           t.TenantID,
		RegistrationNumber: t.RegistrationNumber,
		Kind:               string(t.Kind),
		CapacityKg:         t.CapacityKg,
		InspectionExpiry:   timeOrNil(t.InspectionExpiry),
		InsuranceExpiry:    timeOrNil(t.InsuranceExpiry),
		Status:             string(t.Status),
		Notes:              t.Notes,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
		Version:            t.Version,
	}
}

// ToTrailerListItemResponses converts trailers to list item DTOs
func ToTrailerListItemResponses(trailers []fleet.Trailer, ref time.Time) []TrailerListItemResponse {
	responses := make([]TrailerListItemResponse, len(trailers))
	for i := range trailers {
		t := &trailers[i]
		responses[i] = TrailerListItemResponse{
			ID:                 t.ID,
			RegistrationNumber: t.RegistrationNumber,
			Kind:               string(t.Kind),
			CapacityKg:         t.CapacityKg,
			Status:             string(t.Status),
			DocumentsValid:     t.HasValidDocuments(ref),
			InspectionExpiry:   timeOrNil(t.InspectionExpiry),
			InsuranceExpiry:    timeOrNil(t.InsuranceExpiry),
		}
	}
	return responses
}

// ToDriverResponse converts a domain driver to a response DTO
func ToDriverResponse(d *fleet.Driver) DriverResponse {
	return DriverResponse{
		ID:                d.ID,
		TenantID:          d.TenantID,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		FullName:          d.FullName(),
		Phone:             d.Phone,
		LicenseCategories: d.LicenseCategories,
		LicenseExpiry:     timeOrNil(d.LicenseExpiry),
		Status:            string(d.Status),
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
		Version:           d.Version,
	}
}

// ToDriverListItemResponses converts drivers to list item DTOs.
// Licence validity is evaluated at the reference time.
func ToDriverListItemResponses(drivers []fleet.Driver, ref time.Time) []DriverListItemResponse {
	responses := make([]DriverListItemResponse, len(drivers))
	for i := range drivers {
		d := &drivers[i]
		responses[i] = DriverListItemResponse{
			ID:                d.ID,
			FullName:          d.FullName(),
			Phone:             d.Phone,
			LicenseCategories: d.LicenseCategories,
			LicenseExpiry:     timeOrNil(d.LicenseExpiry),
			LicenseValid:      d.HasValidLicense(ref),
			Status:            string(d.Status),
		}
	}
	return responses
}
