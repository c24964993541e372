package enrollment

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestValidName_LettersAndWhitespace(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		name := rapid.StringMatching(`[a-zA-ZáéíóúñÑ]{1,12}( [a-zA-Z]{1,12})?`).Draw(r, "name")
		require.True(r, ValidName(name), "name %q", name)
	})
}

func TestValidName_RejectsDigitsAndSymbols(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		name := rapid.StringMatching(`[a-zA-Z ]{0,8}[0-9!@#$%&*.,_'<>\-/]{1,3}[a-zA-Z ]{0,8}`).Draw(r, "name")
		require.False(r, ValidName(name), "name %q", name)
	})
}

func TestValidName_Empty(t *testing.T) {
	assert.False(t, ValidName(""))
}

func TestParseAge(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		n := rapid.IntRange(1, 150).Draw(r, "age")
		age, err := ParseAge(strconv.Itoa(n))
		require.NoError(r, err)
		require.Equal(r, n, age)
	})

	rapid.Check(t, func(r *rapid.T) {
		n := rapid.IntRange(-1000, 0).Draw(r, "age")
		_, err := ParseAge(strconv.Itoa(n))
		require.Error(r, err)
	})

	for _, in := range []string{"", "abc", "1.5", "12años", "NaN"} {
		_, err := ParseAge(in)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "input %q", in)
		assert.Equal(t, MsgInvalidAge, verr.Message)
	}
}

func TestNewRegistrant_EndToEndExample(t *testing.T) {
	reg, quote, err := NewRegistrant(Submission{FirstName: "Ana", LastName: "Lopez", Age: "15", Frequency: "2"})
	require.NoError(t, err)
	assert.Equal(t, int64(96000), reg.AmountDue)
	assert.Equal(t, 15, reg.Age)
	assert.Equal(t, "2", reg.PlanDisplay())
	assert.False(t, quote.Miss)
}

func TestNewRegistrant_NameCheckedBeforeAge(t *testing.T) {
	_, _, err := NewRegistrant(Submission{FirstName: "Ana1", LastName: "Lopez", Age: "-3", Frequency: "1"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, MsgInvalidName, verr.Message)

	_, _, err = NewRegistrant(Submission{FirstName: "Ana", LastName: "L0pez", Age: "20", Frequency: "1"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "nombre", verr.Field)
}

func TestSubmission_AgeAcceptsNumberOrString(t *testing.T) {
	var sub Submission
	require.NoError(t, json.Unmarshal([]byte(`{"nombre":"Ana","apellido":"Lopez","edad":15,"diasClase":"2"}`), &sub))
	assert.Equal(t, AgeInput("15"), sub.Age)

	require.NoError(t, json.Unmarshal([]byte(`{"edad":"21"}`), &sub))
	assert.Equal(t, AgeInput("21"), sub.Age)

	require.NoError(t, json.Unmarshal([]byte(`{"edad":null}`), &sub))
	assert.Equal(t, AgeInput(""), sub.Age)
}
