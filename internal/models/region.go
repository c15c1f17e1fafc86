package models

// RecipientType is the channel a region notification is delivered through
type RecipientType string

const (
	RecipientEmail  RecipientType = "email"
	RecipientReddit RecipientType = "reddit"
	RecipientNone   RecipientType = "none"
)

// Polygon is a GeoJSON Polygon: rings of [lng, lat] positions, first ring
// is the exterior and must be closed.
type Polygon struct {
	Type        string        `json:"type" validate:"eq=Polygon"`
	Coordinates [][][]float64 `json:"coordinates" validate:"required,min=1,dive,closedring"`
}

// NotificationRecipient is one destination for region notifications
type NotificationRecipient struct {
	Type   RecipientType `json:"type" validate:"oneof=email reddit none"`
	Target string        `json:"target" validate:"required_unless=Type none"`
}

// NotificationRegion is a named polygon with notification routing
type NotificationRegion struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name" validate:"required"`
	Priority   int                     `json:"priority"`
	Color      string                  `json:"color"`
	Polygon    Polygon                 `json:"polygon"`
	Recipients []NotificationRecipient `json:"recipients" validate:"dive"`
}

// RegionInput is the body of region create and update calls
type RegionInput struct {
	Name       string                  `json:"name" validate:"required"`
	Priority   int                     `json:"priority"`
	Color      string                  `json:"color"`
	Polygon    Polygon                 `json:"polygon"`
	Recipients []NotificationRecipient `json:"recipients" validate:"dive"`
}

// Input strips the identity from a region
func (r NotificationRegion) Input() RegionInput {
	return RegionInput{
		Name:       r.Name,
		Priority:   r.Priority,
		Color:      r.Color,
		Polygon:    r.Polygon,
		Recipients: r.Recipients,
	}
}
