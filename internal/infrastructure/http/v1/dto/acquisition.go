// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"procurement/internal/domain/acquisition"
)

// AcquisitionQuery holds the list and export filters.
type AcquisitionQuery struct {
	Unit     string `form:"unit"`
	Type     string `form:"type"`
	Provider string `form:"provider"`
	State    string `form:"state"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

// ToCriteria converts the query into filter criteria.
func (q AcquisitionQuery) ToCriteria() acquisition.Criteria {
	return acquisition.Criteria{
		Unit:     q.Unit,
		Type:     q.Type,
		Provider: q.Provider,
		State:    acquisition.ParseState(q.State),
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	}
}

// AcquisitionRequest is the create/update body. Values are decoded
// loosely and checked by acquisition.Validate.
type AcquisitionRequest struct {
	Budget          any `json:"budget"`
	Unit            any `json:"unit"`
	Type            any `json:"type"`
	Quantity        any `json:"quantity"`
	UnitValue       any `json:"unitValue"`
	AcquisitionDate any `json:"acquisitionDate"`
	Provider        any `json:"provider"`
	Documentation   any `json:"documentation"`
}

// ToPayload converts the request into the validator input.
func (r AcquisitionRequest) ToPayload() acquisition.Payload {
	return acquisition.Payload(r)
}

// StatusRequest is the body of a status change.
type StatusRequest struct {
	Active any `json:"active"`
}

// ToPayload converts the request into the service input.
func (r StatusRequest) ToPayload() acquisition.StatusPayload {
	return acquisition.StatusPayload(r)
}
