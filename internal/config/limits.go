package config

const (
	// MaxNodeNameLength is the maximum length for location and area names.
	// Matches the VARCHAR(255) name column.
	MaxNodeNameLength = 255

	// MaxDescriptionLength bounds free-text descriptions
	MaxDescriptionLength = 2000

	// MaxAddressLength bounds postal addresses and device network addresses
	MaxAddressLength = 500

	// MaxManagerLength bounds the responsible person's name
	MaxManagerLength = 255

	// MaxHierarchyDepth is the deepest location/area nesting the server accepts.
	// Locations hold areas and areas hold nothing but devices, so two levels suffice.
	MaxHierarchyDepth = 2
)
