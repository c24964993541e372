package enrollment

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	CustomPlanLabel       = "Personalizada"
	CustomPlanPrice int64 = 50000

	// MaxMinorAge is the last age priced from the weekly table.
	MaxMinorAge = 17

	// FrequencyCustom is the form value of the "Personalizada" option.
	FrequencyCustom = "personalizada"
)

// PricingOption maps a number of weekly sessions to its price (COP).
type PricingOption struct {
	SessionsPerWeek int   `json:"veces"`
	Price           int64 `json:"precio"`
}

var pricingTable = [...]PricingOption{
	{SessionsPerWeek: 1, Price: 64000},
	{SessionsPerWeek: 2, Price: 96000},
	{SessionsPerWeek: 3, Price: 120000},
}

// PricingTable returns a copy of the weekly pricing table.
func PricingTable() []PricingOption {
	out := make([]PricingOption, len(pricingTable))
	copy(out, pricingTable[:])
	return out
}

// Plan is the plan attached to a registrant: either a table entry or the custom plan.
// It serializes as {"veces": 2, "precio": 96000} or {"veces": "Personalizada", "precio": 50000}.
type Plan struct {
	Sessions int
	Label    string
	Price    int64
}

func CustomPlan() Plan {
	return Plan{Label: CustomPlanLabel, Price: CustomPlanPrice}
}

func (p Plan) IsCustom() bool { return p.Sessions == 0 }

// Display is what the summary shows under "Clases".
func (p Plan) Display() string {
	if p.IsCustom() {
		return p.Label
	}
	return strconv.Itoa(p.Sessions)
}

type planJSON struct {
	Veces  json.RawMessage `json:"veces"`
	Precio int64           `json:"precio"`
}

func (p Plan) MarshalJSON() ([]byte, error) {
	var veces any = p.Sessions
	if p.IsCustom() {
		veces = p.Label
	}
	raw, err := json.Marshal(veces)
	if err != nil {
		return nil, err
	}
	return json.Marshal(planJSON{Veces: raw, Precio: p.Price})
}

func (p *Plan) UnmarshalJSON(data []byte) error {
	var aux planJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Price = aux.Precio
	p.Sessions, p.Label = 0, ""

	var sessions int
	if err := json.Unmarshal(aux.Veces, &sessions); err == nil {
		p.Sessions = sessions
		return nil
	}
	var label string
	if err := json.Unmarshal(aux.Veces, &label); err != nil {
		return fmt.Errorf("plan: veces must be a number or a label: %w", err)
	}
	p.Label = label
	return nil
}

// Quote is the outcome of pricing a registration.
type Quote struct {
	Plan   *Plan
	Amount int64
	// Miss is set when a minor picked a frequency that is not in the table.
	// The amount is 0 in that case.
	Miss bool
}

// Price applies the enrollment pricing rule.
// Adults always get the custom plan; minors are looked up by exact match of the
// frequency against the table ("1", "2", "3").
func Price(age int, frequency string) Quote {
	if age > MaxMinorAge {
		plan := CustomPlan()
		return Quote{Plan: &plan, Amount: plan.Price}
	}

	for _, opt := range pricingTable {
		if strconv.Itoa(opt.SessionsPerWeek) == frequency {
			plan := Plan{Sessions: opt.SessionsPerWeek, Price: opt.Price}
			return Quote{Plan: &plan, Amount: opt.Price}
		}
	}

	// TODO: "personalizada" is selectable by minors but has no price; decide with the school whether to reject it.
	return Quote{Miss: true}
}
