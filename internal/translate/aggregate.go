package translate

import "strconv"

// aggregateGroupBy implements the implicit grouping rule: if any RETURN
// item is an aggregate call, every other, non-aggregate RETURN item
// becomes a GROUP BY key, referenced by position to avoid re-lowering.
func aggregateGroupBy(items []returnItem) []string {
	hasAggregate := false
	for _, it := range items {
		if it.aggregate {
			hasAggregate = true
			break
		}
	}
	if !hasAggregate {
		return nil
	}

	var groupBy []string
	for i, it := range items {
		if !it.aggregate {
			groupBy = append(groupBy, strconv.Itoa(i+1))
		}
	}
	return groupBy
}
