package assettree

import (
	"context"
	"fmt"

	"iotdash/internal/domain/models/inventory"
	svc "iotdash/internal/domain/services/assettree"
	"iotdash/internal/sample"
)

// LocationCreator is the part of the backend needed to plant a hierarchy
type LocationCreator interface {
	CreateLocation(ctx context.Context, req *inventory.CreateLocationRequest) (*inventory.Location, error)
}

var _ LocationCreator = (svc.Backend)(nil)

// PlantHierarchy creates the sample's locations and their areas through the
// backend and returns the number of nodes created. Devices in the sample are
// ignored: they belong to the device-management flow.
func PlantHierarchy(ctx context.Context, creator LocationCreator, h *sample.Hierarchy) (int, error) {
	created := 0
	for _, site := range h.Locations {
		loc, err := creator.CreateLocation(ctx, siteRequest(site, inventory.LocationTypeLocation, nil))
		if err != nil {
			return created, fmt.Errorf("create location %q: %w", site.Name, err)
		}
		created++

		for _, area := range site.Areas {
			parentID := loc.ID
			if _, err := creator.CreateLocation(ctx, siteRequest(area, inventory.LocationTypeArea, &parentID)); err != nil {
				return created, fmt.Errorf("create area %q: %w", area.Name, err)
			}
			created++
		}
	}
	return created, nil
}

func siteRequest(site sample.Site, typ inventory.LocationType, parentID *string) *inventory.CreateLocationRequest {
	return &inventory.CreateLocationRequest{
		Name:        site.Name,
		Description: site.Description,
		Type:        typ,
		ParentID:    parentID,
		Address:     site.Address,
		Manager:     site.Manager,
		Latitude:    site.Lat,
		Longitude:   site.Lng,
	}
}
