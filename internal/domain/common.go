package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Years - возраст станции в годах.
// Бэкенд отдаёт возраст то целым числом, то float (pandas: 22.0),
// поэтому при декодировании значение округляется до целого.
type Years int

func (y *Years) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*y = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("decode age %s: %w", b, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("decode age %s: not a finite number", b)
	}

	*y = Years(math.Round(f))
	return nil
}
