package inventory

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"iotdash/internal/config"
	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/domain/models/inventory"
	"iotdash/internal/service/rules"
)

var validStatuses = []interface{}{
	string(models.StatusActive),
	string(models.StatusInactive),
	string(models.StatusError),
	string(models.StatusWarning),
	string(models.StatusUnknown),
}

func validateCreateRequest(req *inventory.CreateLocationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, rules.NotBlank, validation.RuneLength(1, config.MaxNodeNameLength)),
		validation.Field(&req.Type,
			validation.Required,
			validation.In(inventory.LocationTypeLocation, inventory.LocationTypeArea).Error("must be location or area"),
		),
		validation.Field(&req.ParentID,
			validation.When(req.Type == inventory.LocationTypeArea, validation.Required.Error("an area needs a parent location")),
		),
		validation.Field(&req.Description, validation.RuneLength(0, config.MaxDescriptionLength)),
		validation.Field(&req.Address, validation.RuneLength(0, config.MaxAddressLength)),
		validation.Field(&req.Manager, validation.RuneLength(0, config.MaxManagerLength)),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

func validateUpdateRequest(req *inventory.UpdateLocationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.When(req.Name != nil, rules.NotBlank, validation.RuneLength(1, config.MaxNodeNameLength)),
		),
		validation.Field(&req.Status, validation.In(validStatuses...)),
	)
}

func validateMoveRequest(req *inventory.MoveLocationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.NewOrderIdx, validation.Min(0)),
	)
}
