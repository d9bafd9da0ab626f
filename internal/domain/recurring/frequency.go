package recurring

// Frequency defines how often a recurring template produces an order
type Frequency string

const (
	FrequencyDaily    Frequency = "DAILY"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyBiweekly Frequency = "BIWEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
)

// IsValid checks if the frequency is valid
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// NeedsDayOfWeek returns true for frequencies anchored to a weekday
func (f Frequency) NeedsDayOfWeek() bool {
	return f == FrequencyWeekly || f == FrequencyBiweekly
}

// NeedsDayOfMonth returns true for frequencies anchored to a day of month
func (f Frequency) NeedsDayOfMonth() bool {
	return f == FrequencyMonthly
}
