package request

import (
	"encoding/json"
	"fmt"
	"strconv"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
)

// ToRawSubmission renders every feature value as the text a form would have sent.
// Null becomes an empty string so it is reported as missing.
func (r *PredictRequest) ToRawSubmission() etassessment.RawSubmission {
	raw := make(etassessment.RawSubmission, len(r.Features))
	for name, v := range r.Features {
		raw[name] = toText(v)
	}
	return raw
}

func toText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(val)
	}
}
