package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Wire names of the seven predictor inputs, as used in request bodies and
// label listings.
const (
	WireMake               = "Make"
	WireModel              = "Model"
	WireVehicleClass       = "Vehicle_Class"
	WireEngineSize         = "Engine_Size_L"
	WireTransmission       = "Transmission"
	WireFuelType           = "Fuel_Type"
	WireFuelConsumptionHwy = "Fuel_Consumption_Hwy_L_100km"
)

// NumberText carries a numeric input exactly as the caller sent it. Both JSON
// numbers and JSON strings are accepted so that non-numeric text reaches the
// predictor's validation (and its specific error) instead of failing JSON
// decoding.
type NumberText string

func (n *NumberText) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = NumberText(str)
		return nil
	}
	*n = NumberText(s)
	return nil
}

func (n NumberText) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(n), 64); err == nil && json.Valid([]byte(n)) {
		return []byte(n), nil
	}
	return json.Marshal(string(n))
}

// Num returns a NumberText pointer for v.
func Num(v float64) *NumberText {
	n := NumberText(strconv.FormatFloat(v, 'g', -1, 64))
	return &n
}

// Str returns a pointer to s.
func Str(s string) *string { return &s }
