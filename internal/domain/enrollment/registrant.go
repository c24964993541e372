package enrollment

import (
	"encoding/json"
	"strings"
)

// StorageKey is the slot key the pending registration is stored under.
const StorageKey = "inscripcionData"

// Registrant is a person enrolling, with derived pricing.
type Registrant struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Age       int    `json:"edad"`
	Plan      *Plan  `json:"clasesSeleccionadas"`
	AmountDue int64  `json:"valorPagar"`
}

// PlanDisplay returns the plan label for the summary, or an empty string when unpriced.
func (r Registrant) PlanDisplay() string {
	if r.Plan == nil {
		return ""
	}
	return r.Plan.Display()
}

// Submission is the raw form input.
type Submission struct {
	FirstName string   `json:"nombre" form:"nombre"`
	LastName  string   `json:"apellido" form:"apellido"`
	Age       AgeInput `json:"edad" form:"edad"`
	Frequency string   `json:"diasClase" form:"diasClase"`
}

// AgeInput keeps the age exactly as typed. JSON clients may send it as a number or a string.
type AgeInput string

func (a *AgeInput) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AgeInput(s)
		return nil
	}
	*a = AgeInput(trimmed)
	return nil
}
