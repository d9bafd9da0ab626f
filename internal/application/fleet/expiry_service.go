package fleet

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/fleet"
)

// DefaultExpiryWindowDays is the feed window when none is requested
const DefaultExpiryWindowDays = 30

// ExpiryService builds the expiring documents feed across vehicles,
// trailers and drivers
type ExpiryService struct {
	vehicleRepo fleet.VehicleRepository
	trailerRepo fleet.TrailerRepository
	driverRepo  fleet.DriverRepository
}

// NewExpiryService creates a new expiry service
func NewExpiryService(
	vehicleRepo fleet.VehicleRepository,
	trailerRepo fleet.TrailerRepository,
	driverRepo fleet.DriverRepository,
) *ExpiryService {
	return &ExpiryService{
		vehicleRepo: vehicleRepo,
		trailerRepo: trailerRepo,
		driverRepo:  driverRepo,
	}
}

// ExpiringDocuments returns every tracked document running out within
// the window ending withinDays after ref, most urgent first. Documents
// already expired at ref are included with a negative DaysLeft.
func (s *ExpiryService) ExpiringDocuments(ctx context.Context, tenantID uuid.UUID, ref time.Time, withinDays int) ([]fleet.ExpiringDocument, error) {
	if withinDays <= 0 {
		withinDays = DefaultExpiryWindowDays
	}
	deadline := ref.AddDate(0, 0, withinDays)

	vehicles, err := s.vehicleRepo.FindWithExpiringDocuments(ctx, tenantID, deadline)
	if err != nil {
		return nil, err
	}
	trailers, err := s.trailerRepo.FindWithExpiringDocuments(ctx, tenantID, deadline)
	if err != nil {
		return nil, err
	}
	drivers, err := s.driverRepo.FindWithExpiringLicense(ctx, tenantID, deadline)
	if err != nil {
		return nil, err
	}

	feed := make([]fleet.ExpiringDocument, 0, len(vehicles)+len(trailers)+len(drivers))
	for i := range vehicles {
		feed = append(feed, vehicles[i].ExpiringDocuments(ref, withinDays)...)
	}
	for i := range trailers {
		feed = append(feed, trailers[i].ExpiringDocuments(ref, withinDays)...)
	}
	for i := range drivers {
		feed = append(feed, drivers[i].ExpiringDocuments(ref, withinDays)...)
	}

	sort.Slice(feed, func(i, j int) bool {
		if feed[i].DaysLeft != feed[j].DaysLeft {
			return feed[i].DaysLeft < feed[j].DaysLeft
		}
		return feed[i].ResourceLabel < feed[j].ResourceLabel
	})

	return feed, nil
}
