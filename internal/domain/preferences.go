package domain

// Notification categories a user can opt out of. Any other value is an
// uncategorized event and is always delivered.
const (
	CategoryChat      = "chat"
	CategoryLeads     = "leads"
	CategoryProposals = "proposals"
	CategoryGeneric   = "generic"
)

// NotificationPreferences is the per-user opt-out map as stored. Pointers
// distinguish "never set" from an explicit choice: a nil field means the user
// never touched the toggle and must be treated as enabled.
type NotificationPreferences struct {
	Chat      *bool `json:"chat,omitempty" dynamodbav:"chat"`
	Leads     *bool `json:"leads,omitempty" dynamodbav:"leads"`
	Proposals *bool `json:"proposals,omitempty" dynamodbav:"proposals"`
}

// MergedPreferences is the stored map merged over the all-true defaults.
type MergedPreferences struct {
	Chat      bool `json:"chat"`
	Leads     bool `json:"leads"`
	Proposals bool `json:"proposals"`
}

// Merged resolves the stored preferences against the defaults. Only an
// explicit false suppresses a category; absence of the row, of a key, or a
// null value all behave as true. Safe to call on a nil receiver.
func (p *NotificationPreferences) Merged() MergedPreferences {
	m := MergedPreferences{Chat: true, Leads: true, Proposals: true}
	if p == nil {
		return m
	}
	if p.Chat != nil {
		m.Chat = *p.Chat
	}
	if p.Leads != nil {
		m.Leads = *p.Leads
	}
	if p.Proposals != nil {
		m.Proposals = *p.Proposals
	}
	return m
}

// Allows reports whether a notification of the given category may be
// delivered. Categories outside the known set are never filtered.
func (m MergedPreferences) Allows(category string) bool {
	switch category {
	case CategoryChat:
		return m.Chat
	case CategoryLeads:
		return m.Leads
	case CategoryProposals:
		return m.Proposals
	default:
		return true
	}
}
