package models

// Indoor/outdoor preference values collected during onboarding.
const (
	IndoorOnly  = "indoor_only"
	OutdoorOnly = "outdoor_only"
	IndoorMixed = "mixed"
)

// QuestPreferences are the onboarding answers the template selector
// filters on. A nil value means the user has not completed onboarding.
type QuestPreferences struct {
	Activities       []string `json:"activities"`
	IndoorPreference string   `json:"indoor_preference"`
	WillingToSpend   *bool    `json:"willing_to_spend"`
	MaxTimeMinutes   int      `json:"max_time_minutes"`
}

// SpendOK reports whether the user is willing to spend money on a quest.
// Unset counts as willing, matching the onboarding default.
func (p *QuestPreferences) SpendOK() bool {
	if p == nil || p.WillingToSpend == nil {
		return true
	}
	return *p.WillingToSpend
}

// Empty reports whether no preference has been recorded at all, in which
// case the preference filter is skipped entirely.
func (p *QuestPreferences) Empty() bool {
	return p == nil || (len(p.Activities) == 0 &&
		p.IndoorPreference == "" &&
		p.WillingToSpend == nil &&
		p.MaxTimeMinutes == 0)
}

// DefaultQuestPreferences returns the preferences assigned to users who
// skip onboarding: everything allowed.
func DefaultQuestPreferences() *QuestPreferences {
	return &QuestPreferences{
		Activities:       []string{},
		IndoorPreference: IndoorMixed,
	}
}
