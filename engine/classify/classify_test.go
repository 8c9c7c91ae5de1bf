package classify_test

import (
	"testing"

	"github.com/compozy/uafixtures/engine/classify"
	"github.com/stretchr/testify/assert"
)

func TestDeviceType(t *testing.T) {
	t.Run("Should classify the fixed lists", func(t *testing.T) {
		for _, tc := range []struct {
			in   string
			want classify.Verdict
		}{
			{"smartphone", classify.Mobile},
			{"Tablet", classify.Mobile},
			{"feature phone", classify.Mobile},
			{"portable media player", classify.Mobile},
			{"tv", classify.NotMobile},
			{"console", classify.NotMobile},
			{"smart display", classify.NotMobile},
			{"desktop", classify.Indeterminate},
			{"", classify.Indeterminate},
		} {
			assert.Equal(t, tc.want, classify.DeviceType(tc.in), tc.in)
		}
	})
}

func TestIsMobile(t *testing.T) {
	t.Run("Should trust a mobile device type", func(t *testing.T) {
		assert.True(t, classify.IsMobile(classify.Subject{DeviceType: "smartphone", OSShortName: "WIN", OSName: "Windows"}))
	})
	t.Run("Should trust a non mobile device type", func(t *testing.T) {
		assert.False(t, classify.IsMobile(classify.Subject{DeviceType: "tv", OSShortName: "AND", OSName: "Android"}))
	})
	t.Run("Should be false for an unknown OS", func(t *testing.T) {
		assert.False(t, classify.IsMobile(classify.Subject{DeviceType: "desktop"}))
		assert.False(t, classify.IsMobile(classify.Subject{OSShortName: "UNK", OSName: "Unknown"}))
	})
	t.Run("Should fall back to the desktop OS families", func(t *testing.T) {
		assert.False(t, classify.IsMobile(classify.Subject{OSShortName: "WIN", OSName: "Windows"}))
		assert.False(t, classify.IsMobile(classify.Subject{OSShortName: "UBT", OSName: "Ubuntu"}))
		assert.True(t, classify.IsMobile(classify.Subject{OSShortName: "AND", OSName: "Android"}))
		assert.True(t, classify.IsMobile(classify.Subject{OSShortName: "IOS", OSFamily: "iOS"}))
	})
	t.Run("Should treat mobile only browsers as mobile", func(t *testing.T) {
		assert.True(t, classify.IsMobile(classify.Subject{OSShortName: "WIN", OSName: "Windows", ClientName: "Opera Mini"}))
	})
	t.Run("Should not flag mobile only browsers without a known OS", func(t *testing.T) {
		assert.False(t, classify.IsMobile(classify.Subject{ClientName: "Opera Mini"}))
		assert.False(t, classify.IsMobile(classify.Subject{OSShortName: "UNK", ClientName: "Mobile Safari"}))
		assert.False(t, classify.IsMobile(classify.Subject{DeviceType: "desktop", ClientName: "Chrome Mobile"}))
	})
	t.Run("Should not flag bots as mobile", func(t *testing.T) {
		assert.False(t, classify.IsMobile(classify.Subject{OSShortName: "AND", OSName: "Android", IsBot: true}))
	})
}

func TestIsDesktop(t *testing.T) {
	t.Run("Should require a known short name", func(t *testing.T) {
		assert.False(t, classify.IsDesktop(classify.Subject{OSName: "Windows"}))
		assert.True(t, classify.IsDesktop(classify.Subject{OSShortName: "WIN", OSName: "Windows 10"}))
	})
	t.Run("Should reject mobile only clients", func(t *testing.T) {
		assert.False(t, classify.IsDesktop(classify.Subject{OSShortName: "MAC", OSName: "Mac", ClientName: "Mobile Safari"}))
	})
}

func TestOSFamily(t *testing.T) {
	t.Run("Should resolve names and prefixes", func(t *testing.T) {
		assert.Equal(t, "GNU/Linux", classify.OSFamily("Debian"))
		assert.Equal(t, "Windows", classify.OSFamily("Windows 11"))
		assert.Equal(t, "Unix", classify.OSFamily("FreeBSD"))
		assert.Equal(t, "Unknown", classify.OSFamily(""))
		assert.Equal(t, "Unknown", classify.OSFamily("Plan9"))
	})
}

func TestIsBotCategory(t *testing.T) {
	t.Run("Should match crawler categories without case", func(t *testing.T) {
		assert.True(t, classify.IsBotCategory("Crawler"))
		assert.False(t, classify.IsBotCategory("pc"))
	})
}
