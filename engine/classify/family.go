package classify

import "strings"

// osFamilies maps an OS name to its family. Names not listed fall back to
// prefix rules in OSFamily.
var osFamilies = map[string]string{
	"Windows":              "Windows",
	"Windows Mobile":       "Windows Mobile",
	"Windows Phone":        "Windows Mobile",
	"Windows CE":           "Windows Mobile",
	"Windows RT":           "Windows Mobile",
	"Windows IoT":          "Windows",
	"Mac":                  "Mac",
	"macOS":                "Mac",
	"Mac OS X":             "Mac",
	"iOS":                  "iOS",
	"iPadOS":               "iOS",
	"watchOS":              "iOS",
	"tvOS":                 "iOS",
	"Android":              "Android",
	"Android TV":           "Android",
	"Fire OS":              "Android",
	"HarmonyOS":            "Android",
	"Chrome OS":            "Chrome OS",
	"Chromium OS":          "Chrome OS",
	"GNU/Linux":            "GNU/Linux",
	"Linux":                "GNU/Linux",
	"Ubuntu":               "GNU/Linux",
	"Debian":               "GNU/Linux",
	"Fedora":               "GNU/Linux",
	"Mint":                 "GNU/Linux",
	"Arch Linux":           "GNU/Linux",
	"CentOS":               "GNU/Linux",
	"Red Hat":              "GNU/Linux",
	"SUSE":                 "GNU/Linux",
	"openSUSE":             "GNU/Linux",
	"Gentoo":               "GNU/Linux",
	"Slackware":            "GNU/Linux",
	"Mandriva":             "GNU/Linux",
	"Kubuntu":              "GNU/Linux",
	"Xubuntu":              "GNU/Linux",
	"Lubuntu":              "GNU/Linux",
	"Manjaro":              "GNU/Linux",
	"FreeBSD":              "Unix",
	"NetBSD":               "Unix",
	"OpenBSD":              "Unix",
	"DragonFly":            "Unix",
	"Solaris":              "Unix",
	"SunOS":                "Unix",
	"HP-UX":                "Unix",
	"IRIX":                 "Unix",
	"AIX":                  "IBM",
	"OS/2":                 "IBM",
	"BeOS":                 "BeOS",
	"Haiku OS":             "BeOS",
	"AmigaOS":              "AmigaOS",
	"MorphOS":              "AmigaOS",
	"BlackBerry OS":        "BlackBerry",
	"BlackBerry Tablet OS": "BlackBerry",
	"Symbian":              "Symbian",
	"Symbian OS":           "Symbian",
	"Symbian^3":            "Symbian",
	"Bada":                 "Bada",
	"Tizen":                "Tizen",
	"KaiOS":                "KaiOS",
	"webOS":                "Other Mobile",
	"Firefox OS":           "Firefox OS",
	"PlayStation":          "Gaming Console",
	"Xbox":                 "Gaming Console",
	"Nintendo":             "Gaming Console",
}

// OSFamily returns the family for an OS name, or "Unknown".
func OSFamily(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown"
	}
	if family, ok := osFamilies[name]; ok {
		return family
	}
	switch {
	case strings.HasPrefix(name, "Windows"):
		return "Windows"
	case strings.HasPrefix(name, "Mac"):
		return "Mac"
	case strings.HasSuffix(name, "Linux"):
		return "GNU/Linux"
	case strings.HasSuffix(name, "BSD"):
		return "Unix"
	}
	return "Unknown"
}
