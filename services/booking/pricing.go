package booking

// refundTier maps a minimum number of hours before the trip start to the
// refund percentage granted.
type refundTier struct {
	minHoursBefore float64
	percentage     int
}

// Tiers are ordered from most to least generous. Cancellations at or beyond
// 24 hours before the start refund 90%; anything closer (but not yet started)
// refunds 50%.
var refundTiers = []refundTier{
	{minHoursBefore: 24, percentage: 90},
	{minHoursBefore: 0, percentage: 50},
}

// refundPercentageFor returns the refund percentage for a cancellation made
// hoursUntilStart hours before the trip. Callers reject negative values before
// consulting the table.
func refundPercentageFor(hoursUntilStart float64) int {
	for _, tier := range refundTiers {
		if hoursUntilStart >= tier.minHoursBefore {
			return tier.percentage
		}
	}
	return 0
}
