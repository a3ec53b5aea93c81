package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestMerged_NilPreferences_AllTrue(t *testing.T) {
	var p *NotificationPreferences
	m := p.Merged()
	assert.True(t, m.Chat)
	assert.True(t, m.Leads)
	assert.True(t, m.Proposals)
}

func TestMerged_PartialMap_MissingKeysDefaultTrue(t *testing.T) {
	p := &NotificationPreferences{Leads: boolPtr(false)}
	m := p.Merged()
	assert.True(t, m.Chat, "omitted chat key must behave as true")
	assert.False(t, m.Leads)
	assert.True(t, m.Proposals)
}

func TestMerged_ExplicitTrue_StaysTrue(t *testing.T) {
	p := &NotificationPreferences{Chat: boolPtr(true)}
	assert.True(t, p.Merged().Chat)
}

func TestAllows_OnlyExplicitFalseSuppresses(t *testing.T) {
	p := &NotificationPreferences{Chat: boolPtr(false)}
	m := p.Merged()
	assert.False(t, m.Allows(CategoryChat))
	assert.True(t, m.Allows(CategoryLeads))
	assert.True(t, m.Allows(CategoryProposals))
}

func TestAllows_UnknownCategory_NeverSuppressed(t *testing.T) {
	p := &NotificationPreferences{
		Chat:      boolPtr(false),
		Leads:     boolPtr(false),
		Proposals: boolPtr(false),
	}
	m := p.Merged()
	assert.True(t, m.Allows(CategoryGeneric))
	assert.True(t, m.Allows("payment_reminder"))
	assert.True(t, m.Allows(""))
}
