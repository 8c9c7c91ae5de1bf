// Package classify derives the mobile and bot flags that several fixture
// suites only express through their own device and client taxonomies.
package classify

import "strings"

// Device types that always describe a mobile device.
var mobileDeviceTypes = map[string]struct{}{
	"feature phone":         {},
	"smartphone":            {},
	"tablet":                {},
	"phablet":               {},
	"camera":                {},
	"portable media player": {},
}

// Device types that never describe a mobile device.
var nonMobileDeviceTypes = map[string]struct{}{
	"tv":            {},
	"smart display": {},
	"console":       {},
}

// desktopOSFamilies lists the OS families treated as desktop systems.
var desktopOSFamilies = map[string]struct{}{
	"AmigaOS":   {},
	"IBM":       {},
	"GNU/Linux": {},
	"Mac":       {},
	"Unix":      {},
	"Windows":   {},
	"BeOS":      {},
	"Chrome OS": {},
}

// mobileOnlyBrowsers are clients that only ship on mobile devices.
var mobileOnlyBrowsers = map[string]struct{}{
	"chrome mobile":           {},
	"chrome mobile ios":       {},
	"mobile safari":           {},
	"opera mobile":            {},
	"opera mini":              {},
	"opera mini ios":          {},
	"firefox mobile":          {},
	"firefox mobile ios":      {},
	"uc browser mini":         {},
	"uc browser turbo":        {},
	"samsung browser lite":    {},
	"miui browser":            {},
	"baidu spark":             {},
	"mint browser":            {},
	"pure mini browser":       {},
	"kiwi":                    {},
	"dolphin":                 {},
	"puffin":                  {},
	"blackberry browser":      {},
	"nokia browser":           {},
	"nokia ovi browser":       {},
	"openwave mobile browser": {},
	"obigo":                   {},
	"polaris":                 {},
	"teashark":                {},
	"skyfire":                 {},
	"mobile silk":             {},
}

type Verdict int

const (
	Indeterminate Verdict = iota
	Mobile
	NotMobile
)

// DeviceType classifies a device type value against the fixed mobile and
// non-mobile lists. Comparison ignores case.
func DeviceType(deviceType string) Verdict {
	t := strings.ToLower(strings.TrimSpace(deviceType))
	if _, ok := mobileDeviceTypes[t]; ok {
		return Mobile
	}
	if _, ok := nonMobileDeviceTypes[t]; ok {
		return NotMobile
	}
	return Indeterminate
}

// IsMobileOnlyBrowser reports whether name is a browser only available on
// mobile devices.
func IsMobileOnlyBrowser(name string) bool {
	_, ok := mobileOnlyBrowsers[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// IsDesktopFamily reports whether family is one of the desktop OS families.
func IsDesktopFamily(family string) bool {
	_, ok := desktopOSFamilies[family]
	return ok
}

// Subject is what the mobile heuristic knows about one record.
type Subject struct {
	DeviceType  string
	OSName      string
	OSShortName string
	// OSFamily may be left empty; it is then derived from OSName.
	OSFamily   string
	ClientName string
	IsBot      bool
}

const unknownOS = "UNK"

func (s Subject) family() string {
	if s.OSFamily != "" && s.OSFamily != "Unknown" {
		return s.OSFamily
	}
	return OSFamily(s.OSName)
}

// IsDesktop reports whether the record describes a desktop system: a known OS
// short name, no mobile-only client and a desktop OS family.
func IsDesktop(s Subject) bool {
	short := strings.TrimSpace(s.OSShortName)
	if short == "" || short == unknownOS {
		return false
	}
	if IsMobileOnlyBrowser(s.ClientName) {
		return false
	}
	return IsDesktopFamily(s.family())
}

// IsMobile decides the ismobile flag. The device type list decides first;
// an indeterminate type without a known OS short name is not mobile, otherwise
// the flag is the inverse of the desktop verdict.
func IsMobile(s Subject) bool {
	switch DeviceType(s.DeviceType) {
	case Mobile:
		return true
	case NotMobile:
		return false
	}
	short := strings.TrimSpace(s.OSShortName)
	if short == "" || short == unknownOS {
		return false
	}
	if s.IsBot {
		return false
	}
	return !IsDesktop(s)
}
