package models

// Date requirement values accepted from the completion collaborator. Any
// other value is rejected during extraction.
const (
	DateNone     = "none"
	DateToday    = "today"
	DateTomorrow = "tomorrow"
	DateSpecific = "specific_date"
)

// Time preference buckets accepted from the completion collaborator.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeWeekday   = "weekday"
	TimeWeekend   = "weekend"
)

// SearchCriteria is the structured form of a free-text search prompt. It is
// built once per request from the completion reply, consumed by the query
// builder, and never persisted.
type SearchCriteria struct {
	Condition          *string  `json:"condition"`
	Specialty          *string  `json:"specialty"`
	RelatedConditions  []string `json:"relatedConditions"`
	District           *string  `json:"district"`
	TimePreferences    []string `json:"timePreferences"`
	HospitalPreference *string  `json:"hospitalPreference"`
	DateRequirement    string   `json:"dateRequirement"`
	SpecificDate       *string  `json:"specificDate"`
	Urgency            bool     `json:"urgency"`
}

// SearchMeta carries result-set metadata for AI search responses.
type SearchMeta struct {
	Count int `json:"count"`
}

// SearchResult is the AI search response shape before envelope wrapping.
type SearchResult struct {
	Data     []Doctor       `json:"data"`
	Meta     SearchMeta     `json:"meta"`
	Criteria SearchCriteria `json:"searchCriteria"`
}
