package testutil

import "iotdash/internal/domain/models/inventory"

// Fixture ids of the factory backend
const (
	MainFactoryID = "loc-main"
	LocationXID   = "loc-x"
	FloorAID      = "area-a"
	FloorBID      = "area-b"
	QCID          = "area-qc"
	PLC1ID        = "dev-plc1"
	Temp1ID       = "dp-temp1"
	Pressure1ID   = "dp-pressure1"
)

// FactoryBackend returns a backend holding:
//
//	Main Factory
//	├── Floor A
//	│   └── PLC1 (active)
//	│       ├── Temp1
//	│       └── Pressure1
//	└── Floor B
//	Location X
//	└── QC
func FactoryBackend() *FakeBackend {
	return NewFakeBackend().
		AddLocation(MainFactoryID, "Main Factory", inventory.LocationTypeLocation, "").
		AddLocation(FloorAID, "Floor A", inventory.LocationTypeArea, MainFactoryID).
		AddLocation(FloorBID, "Floor B", inventory.LocationTypeArea, MainFactoryID).
		AddLocation(LocationXID, "Location X", inventory.LocationTypeLocation, "").
		AddLocation(QCID, "QC", inventory.LocationTypeArea, LocationXID).
		AddDevice(PLC1ID, "PLC1", FloorAID, "active").
		AddDataPoint(Temp1ID, "Temp1", PLC1ID).
		AddDataPoint(Pressure1ID, "Pressure1", PLC1ID)
}
