package diff

import "renting-scraper/feature/property/models"

// Compute returns the attributes whose value differs between the
// observation and its persisted counterpart, keyed by attribute name.
//
// Each attribute is compared independently by strict inequality; a nil
// nullable on both sides is no change, nil against a value is. Identity
// fields are never part of the map: the pair matches by construction.
// The function is pure and total.
func Compute(observed models.ObservedProperty, persisted models.PropertyEntity) models.Changes {
	changes := models.Changes{}

	if !floatPtrEqual(persisted.AreaInM3, observed.AreaInM3) {
		changes[models.FieldAreaInM3] = models.FieldChange{
			Old: ptrValue(persisted.AreaInM3),
			New: ptrValue(observed.AreaInM3),
		}
	}
	if persisted.Description != observed.Description {
		changes[models.FieldDescription] = models.FieldChange{
			Old: persisted.Description,
			New: observed.Description,
		}
	}
	if !stringPtrEqual(persisted.EnergyCertification, observed.EnergyCertification) {
		changes[models.FieldEnergyCertification] = models.FieldChange{
			Old: ptrValue(persisted.EnergyCertification),
			New: ptrValue(observed.EnergyCertification),
		}
	}
	if persisted.Link != observed.Link {
		changes[models.FieldLink] = models.FieldChange{
			Old: persisted.Link,
			New: observed.Link,
		}
	}
	if persisted.Location != observed.Location {
		changes[models.FieldLocation] = models.FieldChange{
			Old: persisted.Location,
			New: observed.Location,
		}
	}
	if persisted.Price != observed.Price {
		changes[models.FieldPrice] = models.FieldChange{
			Old: persisted.Price,
			New: observed.Price,
		}
	}

	return changes
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ptrValue unwraps a nullable for the change map so consumers see the
// value or nil, never a pointer.
func ptrValue[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
