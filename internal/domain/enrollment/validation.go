package enrollment

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	MsgInvalidName = "El nombre y apellido deben contener solo letras."
	MsgInvalidAge  = "La edad debe ser un número válido y mayor a 0."
)

var namePattern = regexp.MustCompile(`^[\p{L}\s]+$`)

// ValidationError is a rejected submission. Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ValidName reports whether s holds only letters and whitespace (and is not empty).
func ValidName(s string) bool {
	return namePattern.MatchString(s)
}

// ParseAge parses a positive whole number of years.
func ParseAge(s string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age <= 0 {
		return 0, &ValidationError{Field: "edad", Message: MsgInvalidAge}
	}
	return age, nil
}

// NewRegistrant validates a submission and prices it.
// Names are checked before the age, so a submission with both problems reports the name.
func NewRegistrant(sub Submission) (Registrant, Quote, error) {
	if !ValidName(sub.FirstName) || !ValidName(sub.LastName) {
		return Registrant{}, Quote{}, &ValidationError{Field: "nombre", Message: MsgInvalidName}
	}

	age, err := ParseAge(string(sub.Age))
	if err != nil {
		return Registrant{}, Quote{}, err
	}

	quote := Price(age, sub.Frequency)
	return Registrant{
		FirstName: sub.FirstName,
		LastName:  sub.LastName,
		Age:       age,
		Plan:      quote.Plan,
		AmountDue: quote.Amount,
	}, quote, nil
}
