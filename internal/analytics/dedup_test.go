package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUniqueCountCollapsesRepeatedIPs(t *testing.T) {
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	clicks := make([]ClickEvent, 0, 12)
	for i := 0; i < 9; i++ {
		clicks = append(clicks, ClickEvent{IPAddress: "203.0.113.7", ClickedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	clicks = append(clicks,
		ClickEvent{IPAddress: "198.51.100.1", ClickedAt: base},
		ClickEvent{IPAddress: "198.51.100.1", ClickedAt: base},
		ClickEvent{IPAddress: "192.0.2.44", ClickedAt: base},
	)

	assert.Len(t, clicks, 12)
	assert.Equal(t, 3, UniqueCount(clicks))
}

func TestUniqueCountDoesNotNormalizeMappedIPv6(t *testing.T) {
	clicks := []ClickEvent{
		{IPAddress: "192.0.2.1"},
		{IPAddress: "::ffff:192.0.2.1"},
	}
	assert.Equal(t, 2, UniqueCount(clicks))
}

func TestUniqueCountBounds(t *testing.T) {
	assert.Equal(t, 0, UniqueCount(nil))

	distinct := make([]ClickEvent, 0, 20)
	for i := 0; i < 20; i++ {
		distinct = append(distinct, ClickEvent{IPAddress: fmt.Sprintf("10.0.0.%d", i)})
	}
	assert.Equal(t, len(distinct), UniqueCount(distinct))

	withDup := append(distinct, ClickEvent{IPAddress: "10.0.0.3"})
	assert.Less(t, UniqueCount(withDup), len(withDup))
}
