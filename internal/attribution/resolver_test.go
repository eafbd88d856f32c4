package attribution

import (
	"testing"
	"time"

	"github.com/clickpath/internal/constants"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestResolveAttributesWithoutClickHistory(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	got := Resolve(ResolveInput{ConvertedAt: now, Window: 30 * 24 * time.Hour})
	assert.True(t, got.Attributed)
	assert.True(t, got.TargetEligible)
	assert.Empty(t, got.Note)
}

func TestResolveExpiredLinkStillAttributed(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	got := Resolve(ResolveInput{
		ConvertedAt:   now,
		LinkExpiresAt: timePtr(now.Add(-time.Hour)),
		Window:        30 * 24 * time.Hour,
	})
	assert.True(t, got.Attributed)
	assert.False(t, got.TargetEligible)
	assert.Equal(t, constants.AttributionNoteLinkExpired, got.Note)
}

func TestResolveCampaignRange(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	campaign := &CampaignRange{StartDate: start, EndDate: &end}

	before := Resolve(ResolveInput{ConvertedAt: start.Add(-time.Minute), Campaign: campaign})
	assert.False(t, before.TargetEligible)
	assert.Equal(t, constants.AttributionNoteBeforeCampaign, before.Note)

	after := Resolve(ResolveInput{ConvertedAt: end.Add(time.Minute), Campaign: campaign})
	assert.False(t, after.TargetEligible)
	assert.Equal(t, constants.AttributionNoteAfterCampaign, after.Note)

	inside := Resolve(ResolveInput{ConvertedAt: end, Campaign: campaign})
	assert.True(t, inside.TargetEligible)
}

func TestResolveOutsideAttributionWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 7 * 24 * time.Hour

	within := Resolve(ResolveInput{ConvertedAt: now, LastClickAt: timePtr(now.Add(-window)), Window: window})
	assert.True(t, within.TargetEligible)

	outside := Resolve(ResolveInput{ConvertedAt: now, LastClickAt: timePtr(now.Add(-window - time.Second)), Window: window})
	assert.True(t, outside.Attributed)
	assert.False(t, outside.TargetEligible)
	assert.Equal(t, constants.AttributionNoteOutsideWindow, outside.Note)
}

func TestEffectiveWindow(t *testing.T) {
	override := 3
	assert.Equal(t, 3*24*time.Hour, EffectiveWindow(&override, 14, 30))
	assert.Equal(t, 14*24*time.Hour, EffectiveWindow(nil, 14, 30))
	assert.Equal(t, 30*24*time.Hour, EffectiveWindow(nil, 0, 30))
	assert.Equal(t, time.Duration(constants.DefaultCookieDays)*24*time.Hour, EffectiveWindow(nil, 0, 0))
}
