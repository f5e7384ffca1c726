package usecase

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/flant/identity-core/model"
)

// MaxPageLimit caps list page sizes regardless of what the caller asks for.
const MaxPageLimit = 1000

func capLimit(limit int) int {
	if limit <= 0 || limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// matchKeyword is the substring filter applied over id and name fields
// of listed entities. Empty keyword matches everything.
func matchKeyword(keyword string, fields ...string) bool {
	if keyword == "" {
		return true
	}
	keyword = strings.ToLower(keyword)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), keyword) {
			return true
		}
	}
	return false
}

// statCount groups entities by the value found at a gjson field path and
// returns counts per distinct value. Entities are serialized with
// sensitive fields stripped before addressing, so secret material never
// participates in aggregation.
func statCount(objs []interface{}, fieldPath string) (map[string]int, error) {
	counts := map[string]int{}
	for _, obj := range objs {
		data, err := model.Marshal(obj, false)
		if err != nil {
			return nil, err
		}
		value := gjson.GetBytes(data, fieldPath)
		if !value.Exists() {
			continue
		}
		counts[value.String()]++
	}
	return counts, nil
}
