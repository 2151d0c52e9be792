package handler

import (
	"fmt"
	"sort"
	"strconv"

	"visitorid/internal/visitor/models"
	dErrors "visitorid/pkg/domain-errors"
)

// RegisterRequest is the flat JSON registration body. Values are kept loose
// so numeric or boolean scalars sent by form-driven clients still reach
// validation as text.
type RegisterRequest map[string]any

// Submission converts the body into a models.Submission. Null values are
// dropped; objects and arrays are rejected.
func (r RegisterRequest) Submission() (models.Submission, error) {
	sub := make(models.Submission, len(r))
	var bad []string
	for key, raw := range r {
		switch v := raw.(type) {
		case nil:
		case string:
			sub[key] = v
		case float64:
			sub[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			sub[key] = strconv.FormatBool(v)
		default:
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("fields must be plain values: %v", bad)).WithDetails(bad...)
	}
	return sub, nil
}
