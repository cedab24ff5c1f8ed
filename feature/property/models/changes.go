package models

// Attribute names used as keys of a change map. They match the JSON
// names of the mutable fields on PropertyEntity; the identity fields
// (source, externalId) never appear in a change map.
const (
	FieldAreaInM3            = "areaInM3"
	FieldDescription         = "description"
	FieldEnergyCertification = "energyCertification"
	FieldLink                = "link"
	FieldLocation            = "location"
	FieldPrice               = "price"
)

// FieldChange holds the persisted and observed value of one attribute.
type FieldChange struct {
	Old any `json:"oldValue"`
	New any `json:"newValue"`
}

// Changes maps attribute names to their old/new pair for every
// attribute that differs between an observation and the persisted row.
type Changes map[string]FieldChange

// ColumnUpdates translates a change map into a GORM column update map
// carrying the new values. Unknown keys are skipped.
func (c Changes) ColumnUpdates() map[string]any {
	columns := map[string]string{
		FieldAreaInM3:            "area_in_m3",
		FieldDescription:         "description",
		FieldEnergyCertification: "energy_certification",
		FieldLink:                "link",
		FieldLocation:            "location",
		FieldPrice:               "price",
	}

	updates := make(map[string]any, len(c))
	for field, change := range c {
		column, ok := columns[field]
		if !ok {
			continue
		}
		updates[column] = change.New
	}
	return updates
}
