package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"iotdash/internal/config"
	"iotdash/internal/domain/models/inventory"
	invRepo "iotdash/internal/domain/repositories/inventory"
	invSvc "iotdash/internal/domain/services/inventory"
	"iotdash/internal/repository/postgres"
	postgresInv "iotdash/internal/repository/postgres/inventory"
	"iotdash/internal/sample"
	serviceInv "iotdash/internal/service/inventory"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed the demo plant")
	clearData := flag.Bool("clear-data", false, "Delete all locations, devices and data points (keep schema)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: --drop-tables and --clear-data are disabled in production")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	switch {
	case *clearData:
		log.Printf("Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	case *schemaOnly:
		log.Printf("Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	default:
		log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		return
	}

	if *clearData {
		if err := postgres.ClearData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared")
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	locationRepo := postgresInv.NewLocationRepository(repoConfig)
	deviceRepo := postgresInv.NewDeviceRepository(repoConfig)
	dataPointRepo := postgresInv.NewDataPointRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	locationService := serviceInv.NewLocationService(
		locationRepo, deviceRepo, dataPointRepo, txManager, serviceInv.NewTextSanitizer(), logger,
	)

	if err := postgres.ClearData(ctx, pool, tables); err != nil {
		log.Printf("Warning: could not clear data: %v", err)
	}

	plant, err := sample.Demo()
	if err != nil {
		log.Fatalf("Failed to load demo plant: %v", err)
	}

	s := &seeder{
		locations:  locationService,
		devices:    deviceRepo,
		dataPoints: dataPointRepo,
	}
	for _, site := range plant.Locations {
		if err := s.seedSite(ctx, site, inventory.LocationTypeLocation, nil); err != nil {
			log.Fatalf("Failed to seed %q: %v", site.Name, err)
		}
	}

	log.Printf("Seeding complete: %d locations/areas, %d devices, %d data points",
		s.sites, s.deviceCount, s.pointCount)
}

// seeder writes the demo plant. Locations go through the service so they get
// the same validation and ordering as API-created ones.
type seeder struct {
	locations  invSvc.LocationService
	devices    invRepo.DeviceRepository
	dataPoints invRepo.DataPointRepository

	sites, deviceCount, pointCount int
}

func (s *seeder) seedSite(ctx context.Context, site sample.Site, typ inventory.LocationType, parentID *string) error {
	loc, err := s.locations.CreateLocation(ctx, &inventory.CreateLocationRequest{
		Name:        site.Name,
		Description: site.Description,
		Type:        typ,
		ParentID:    parentID,
		Address:     site.Address,
		Manager:     site.Manager,
		Latitude:    site.Lat,
		Longitude:   site.Lng,
	})
	if err != nil {
		return err
	}
	s.sites++
	log.Printf("Created %s %q (ID: %s)", typ, loc.Name, loc.ID)

	for _, d := range site.Devices {
		if err := s.seedDevice(ctx, d, loc); err != nil {
			return err
		}
	}

	for _, area := range site.Areas {
		if err := s.seedSite(ctx, area, inventory.LocationTypeArea, &loc.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) seedDevice(ctx context.Context, d sample.Device, parent *inventory.Location) error {
	now := time.Now()
	device := &inventory.Device{
		ID:          uuid.NewString(),
		Name:        d.Name,
		DeviceType:  d.DeviceType,
		Status:      d.Status,
		Vendor:      d.Vendor,
		Model:       d.Model,
		Address:     d.Address,
		LastSeen:    &now,
		Reliability: 99.5,
		AlertCount:  d.AlertCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if parent.Type == inventory.LocationTypeArea {
		device.AreaID = &parent.ID
	} else {
		device.LocationID = &parent.ID
	}
	if device.Status == "" {
		device.Status = "active"
	}

	if err := s.devices.Create(ctx, device); err != nil {
		return err
	}
	s.deviceCount++

	for _, p := range d.DataPoints {
		if err := s.dataPoints.Create(ctx, &inventory.DataPoint{
			ID:        uuid.NewString(),
			DeviceID:  device.ID,
			Name:      p.Name,
			DataType:  p.DataType,
			Unit:      p.Unit,
			Address:   p.Address,
			Enabled:   true,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
		s.pointCount++
	}
	return nil
}
