// Package acquisition provides the procurement acquisition record, its
// validation rules, the filter engine and the repository service that
// keeps records and their audit history together.
package acquisition

import (
	"strings"

	"procurement/internal/core/types"
)

// Acquisition is a procurement record: what was bought, from whom, at what cost.
type Acquisition struct {
	ID              int64       `json:"id"`
	Budget          types.Money `json:"budget"`
	Unit            string      `json:"unit"`
	Type            string      `json:"type"`
	Quantity        types.Money `json:"quantity"`
	UnitValue       types.Money `json:"unitValue"`
	TotalValue      types.Money `json:"totalValue"`
	AcquisitionDate string      `json:"acquisitionDate"`
	Provider        string      `json:"provider"`
	Documentation   string      `json:"documentation"`
	Active          bool        `json:"active"`
}

// Input holds the editable fields of an acquisition after validation.
// Obtain it from Validate; the service trusts its contents.
type Input struct {
	Budget          types.Money
	Unit            string
	Type            string
	Quantity        types.Money
	UnitValue       types.Money
	AcquisitionDate string
	Provider        string
	Documentation   string
}

// apply copies the editable fields onto a and recomputes the total.
// ID and Active are left untouched.
func (a *Acquisition) apply(in Input) {
	a.Budget = in.Budget
	a.Unit = strings.TrimSpace(in.Unit)
	a.Type = strings.TrimSpace(in.Type)
	a.Quantity = in.Quantity
	a.UnitValue = in.UnitValue
	a.TotalValue = in.Quantity.Mul(in.UnitValue)
	a.AcquisitionDate = in.AcquisitionDate
	a.Provider = strings.TrimSpace(in.Provider)
	a.Documentation = strings.TrimSpace(in.Documentation)
}

// StateLabel returns ACTIVE or INACTIVE.
func (a Acquisition) StateLabel() string {
	if a.Active {
		return string(StateActive)
	}
	return string(StateInactive)
}

// Payload is the body of create and update requests as received from the
// wire. Values stay untyped until Validate has checked them: a field is
// "missing" when absent, null or the empty string.
type Payload struct {
	Budget          any `json:"budget"`
	Unit            any `json:"unit"`
	Type            any `json:"type"`
	Quantity        any `json:"quantity"`
	UnitValue       any `json:"unitValue"`
	AcquisitionDate any `json:"acquisitionDate"`
	Provider        any `json:"provider"`
	Documentation   any `json:"documentation"`
}

// StatusPayload is the body of a status change request.
type StatusPayload struct {
	Active any `json:"active"`
}
