package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Source identifies the portal a listing was observed on.
type Source string

const (
	SourceImovirtual Source = "imovirtual"
	SourceIdealista  Source = "idealista"
)

// IsValid checks if the source belongs to the known set.
func (s Source) IsValid() bool {
	switch s {
	case SourceImovirtual, SourceIdealista:
		return true
	default:
		return false
	}
}

// Status describes the lifecycle state of a persisted listing.
type Status string

const (
	// StatusActive means the listing was present in the latest complete run.
	StatusActive Status = "active"
	// StatusDelisted means the listing disappeared and was tombstoned.
	// A delisted row keeps its (source, external_id) key and can be restored.
	StatusDelisted Status = "delisted"
)

// PropertyEntity is the persisted form of a listing.
//
// Identity is the generated ID plus the natural key (source, external_id).
// The natural key stays unique across the whole table, tombstoned rows
// included, so a relisted property always maps back to its original row.
type PropertyEntity struct {
	ID                  string         `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Source              Source         `gorm:"column:source;type:varchar(32);uniqueIndex:uk_source_external_id" json:"source"`
	ExternalID          string         `gorm:"column:external_id;type:varchar(64);uniqueIndex:uk_source_external_id" json:"externalId"`
	Description         string         `gorm:"column:description" json:"description"`
	Price               float64        `gorm:"column:price" json:"price"`
	Location            string         `gorm:"column:location" json:"location"`
	AreaInM3            *float64       `gorm:"column:area_in_m3" json:"areaInM3"`
	EnergyCertification *string        `gorm:"column:energy_certification" json:"energyCertification"`
	Link                string         `gorm:"column:link" json:"link"`
	CreatedAt           time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt           time.Time      `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deletedAt"`
}

// TableName overrides the table name.
func (PropertyEntity) TableName() string {
	return "properties"
}

// BeforeCreate assigns the entity ID. The ID is never reassigned afterwards.
func (p *PropertyEntity) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Delisted reports whether the row is tombstoned.
func (p *PropertyEntity) Delisted() bool {
	return p.DeletedAt.Valid
}

// Status returns the explicit lifecycle state of the row.
func (p *PropertyEntity) Status() Status {
	if p.Delisted() {
		return StatusDelisted
	}
	return StatusActive
}

// Key returns the natural key of the row.
func (p *PropertyEntity) Key() PropertyKey {
	return PropertyKey{Source: p.Source, ExternalID: p.ExternalID}
}

// PropertyKey is the natural key (source, externalId) of a listing.
type PropertyKey struct {
	Source     Source `json:"source"`
	ExternalID string `json:"externalId"`
}

// ObservedProperty is a producer's fresh snapshot of a listing.
// It carries no identity or timestamps and is never persisted directly;
// it only seeds or updates a PropertyEntity.
type ObservedProperty struct {
	Source              Source   `json:"source"`
	ExternalID          string   `json:"externalId"`
	Description         string   `json:"description"`
	Price               float64  `json:"price"`
	Location            string   `json:"location"`
	AreaInM3            *float64 `json:"areaInM3"`
	EnergyCertification *string  `json:"energyCertification"`
	Link                string   `json:"link"`
}

// Key returns the natural key of the observation.
func (o ObservedProperty) Key() PropertyKey {
	return PropertyKey{Source: o.Source, ExternalID: o.ExternalID}
}

// ToEntity builds a candidate entity from the observation.
// The ID is left empty for the store to assign on insert.
func (o ObservedProperty) ToEntity() PropertyEntity {
	return PropertyEntity{
		Source:              o.Source,
		ExternalID:          o.ExternalID,
		Description:         o.Description,
		Price:               o.Price,
		Location:            o.Location,
		AreaInM3:            o.AreaInM3,
		EnergyCertification: o.EnergyCertification,
		Link:                o.Link,
	}
}
