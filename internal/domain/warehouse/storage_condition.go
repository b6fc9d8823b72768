package warehouse

import (
	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// ConditionType identifies an environmental storage condition
type ConditionType string

const (
	ConditionTypeTemperature ConditionType = "TEMPERATURE"
	ConditionTypeHumidity    ConditionType = "HUMIDITY"
	ConditionTypeLight       ConditionType = "LIGHT_EXPOSURE"
	// ConditionTypeHazardous is boolean-like: a section either is or is not
	// certified for hazardous materials. Its bounds are always stored as zero.
	ConditionTypeHazardous ConditionType = "HAZARDOUS_MATERIALS"
)

// String returns the string representation of the condition type
func (t ConditionType) String() string {
	return string(t)
}

// IsValid returns true if the condition type is valid
func (t ConditionType) IsValid() bool {
	switch t {
	case ConditionTypeTemperature, ConditionTypeHumidity, ConditionTypeLight, ConditionTypeHazardous:
		return true
	}
	return false
}

// DefaultUnit returns the unit conventionally used for the condition type
func (t ConditionType) DefaultUnit() string {
	switch t {
	case ConditionTypeTemperature:
		return "°C"
	case ConditionTypeHumidity:
		return "%"
	case ConditionTypeLight:
		return "lux"
	default:
		return ""
	}
}

// ConditionRequirement is a requested environmental range, as it arrives with
// an intake batch or a section creation request.
type ConditionRequirement struct {
	Type ConditionType `json:"type"`
	Min  float64       `json:"min"`
	Max  float64       `json:"max"`
	Unit string        `json:"unit"`
}

// Validate checks the requirement for basic consistency
func (r ConditionRequirement) Validate() error {
	if !r.Type.IsValid() {
		return shared.NewDomainError("INVALID_CONDITION", "Unknown storage condition type: "+string(r.Type))
	}
	if r.Type != ConditionTypeHazardous && r.Min > r.Max {
		return shared.NewDomainError("INVALID_CONDITION", "Storage condition min cannot exceed max")
	}
	return nil
}

// StorageCondition is a persisted environmental guarantee declared by a
// section. A section satisfies a requested range when its declared range is a
// superset of the requested one.
type StorageCondition struct {
	shared.BaseEntity
	SectionID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Type      ConditionType `gorm:"type:varchar(30);not null"`
	Min       float64       `gorm:"not null"`
	Max       float64       `gorm:"not null"`
	Unit      string        `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (StorageCondition) TableName() string {
	return "storage_conditions"
}

// NewStorageCondition creates a persisted condition from a requirement.
// Hazardous-materials conditions always store min=max=0; requested bounds are
// accepted but discarded since the condition carries no range semantics.
func NewStorageCondition(sectionID uuid.UUID, req ConditionRequirement) (*StorageCondition, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	min, max := req.Min, req.Max
	if req.Type == ConditionTypeHazardous {
		min, max = 0, 0
	}

	unit := req.Unit
	if unit == "" {
		unit = req.Type.DefaultUnit()
	}

	return &StorageCondition{
		BaseEntity: shared.NewBaseEntity(),
		SectionID:  sectionID,
		Type:       req.Type,
		Min:        min,
		Max:        max,
		Unit:       unit,
	}, nil
}

// Satisfies reports whether this declared condition covers the requested
// range: same type, and declared [Min,Max] ⊇ requested [Min,Max].
func (c *StorageCondition) Satisfies(req ConditionRequirement) bool {
	if c.Type != req.Type {
		return false
	}
	if c.Type == ConditionTypeHazardous {
		return true
	}
	return c.Min <= req.Min && req.Max <= c.Max
}
