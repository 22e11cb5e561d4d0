package models

// Requests for the vitals HTTP endpoints. Defined in domain for consistency and reuse.

type HistoryRequest struct {
	Name string `param:"name" json:"name" validate:"required"`
	N    int    `query:"n" json:"n" default:"40" validate:"gte=1,lte=60"`
	Kind string `query:"kind" json:"kind" default:"chart" validate:"oneof=chart trend"`
}

type AnomalyListRequest struct {
	Severity string `query:"severity" json:"severity" validate:"omitempty,oneof=low medium high"`
	Status   string `query:"status" json:"status" validate:"omitempty,oneof=info active auto-resolved"`
	Limit    int    `query:"limit" json:"limit" default:"15" validate:"gte=1,lte=15"`
}

type CorrelationRequest struct {
	A string `query:"a" json:"a" validate:"omitempty"`
	B string `query:"b" json:"b" validate:"omitempty,required_with=A"`
}
