package diff

import (
	"testing"

	"renting-scraper/feature/property/models"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func baseEntity() models.PropertyEntity {
	return models.PropertyEntity{
		ID:                  "id-1",
		Source:              models.SourceImovirtual,
		ExternalID:          "ext-1",
		Description:         "T2 apartment",
		Price:               100,
		Location:            "Lisboa",
		AreaInM3:            floatPtr(80),
		EnergyCertification: strPtr("B"),
		Link:                "https://example.com/1",
	}
}

func baseObserved() models.ObservedProperty {
	return models.ObservedProperty{
		Source:              models.SourceImovirtual,
		ExternalID:          "ext-1",
		Description:         "T2 apartment",
		Price:               100,
		Location:            "Lisboa",
		AreaInM3:            floatPtr(80),
		EnergyCertification: strPtr("B"),
		Link:                "https://example.com/1",
	}
}

func TestCompute_NoChanges(t *testing.T) {
	changes := Compute(baseObserved(), baseEntity())
	assert.Empty(t, changes)
}

// A single differing attribute must be the only entry in the map.
func TestCompute_FieldLevelPrecision(t *testing.T) {
	observed := baseObserved()
	observed.Price = 120

	changes := Compute(observed, baseEntity())

	assert.Len(t, changes, 1)
	assert.Equal(t, models.FieldChange{Old: float64(100), New: float64(120)}, changes[models.FieldPrice])
	assert.NotContains(t, changes, models.FieldLocation)
}

func TestCompute_AllFields(t *testing.T) {
	observed := models.ObservedProperty{
		Source:              models.SourceImovirtual,
		ExternalID:          "ext-1",
		Description:         "T3 apartment",
		Price:               150,
		Location:            "Porto",
		AreaInM3:            floatPtr(95),
		EnergyCertification: strPtr("A"),
		Link:                "https://example.com/other",
	}

	changes := Compute(observed, baseEntity())

	assert.Len(t, changes, 6)
	for _, field := range []string{
		models.FieldAreaInM3,
		models.FieldDescription,
		models.FieldEnergyCertification,
		models.FieldLink,
		models.FieldLocation,
		models.FieldPrice,
	} {
		assert.Contains(t, changes, field)
	}
}

func TestCompute_NullableSemantics(t *testing.T) {
	tests := []struct {
		name      string
		persisted *float64
		observed  *float64
		changed   bool
	}{
		{"both nil", nil, nil, false},
		{"nil to value", nil, floatPtr(70), true},
		{"value to nil", floatPtr(70), nil, true},
		{"equal values", floatPtr(70), floatPtr(70), false},
		{"different values", floatPtr(70), floatPtr(75), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity := baseEntity()
			entity.AreaInM3 = tt.persisted
			observed := baseObserved()
			observed.AreaInM3 = tt.observed

			changes := Compute(observed, entity)

			if tt.changed {
				assert.Contains(t, changes, models.FieldAreaInM3)
			} else {
				assert.NotContains(t, changes, models.FieldAreaInM3)
			}
		})
	}
}

// Change map values carry unwrapped nullables, never pointers.
func TestCompute_NullableValuesUnwrapped(t *testing.T) {
	entity := baseEntity()
	entity.EnergyCertification = nil
	observed := baseObserved()
	observed.EnergyCertification = strPtr("A")

	changes := Compute(observed, entity)

	change := changes[models.FieldEnergyCertification]
	assert.Nil(t, change.Old)
	assert.Equal(t, "A", change.New)
}

// Identity fields never appear in the map, even when they differ.
func TestCompute_IdentityFieldsExcluded(t *testing.T) {
	observed := baseObserved()
	observed.Source = models.SourceIdealista
	observed.ExternalID = "other"

	changes := Compute(observed, baseEntity())
	assert.Empty(t, changes)
}
