package render

import "strings"

type Theme struct {
	Icon       string `json:"icon"`
	Glyph      string `json:"glyph"`
	Background string `json:"background"`
}

var defaultBackground = "from-blue-400 via-blue-500 to-blue-600"

var backgrounds = map[string]string{
	"clear":        "from-yellow-400 via-orange-500 to-red-500",
	"clouds":       "from-gray-400 via-gray-500 to-gray-600",
	"rain":         "from-blue-600 via-blue-700 to-blue-800",
	"snow":         "from-blue-100 via-blue-200 to-blue-300",
	"thunderstorm": "from-gray-700 via-gray-800 to-black",
}

var icons = map[string][2]string{
	"clear":        {"sun", "☀"},
	"clouds":       {"cloud", "☁"},
	"rain":         {"cloud-rain", "🌧"},
	"drizzle":      {"cloud-drizzle", "🌦"},
	"snow":         {"cloud-snow", "❄"},
	"thunderstorm": {"cloud-lightning", "⛈"},
	"mist":         {"cloud-fog", "🌫"},
	"fog":          {"cloud-fog", "🌫"},
}

// ThemeFor picks icon and background by condition group, case-insensitive.
// An empty condition is the "no data yet" theme.
func ThemeFor(conditionMain string) Theme {
	key := strings.ToLower(conditionMain)

	theme := Theme{Icon: "wind", Glyph: "༄", Background: defaultBackground}
	if icon, ok := icons[key]; ok {
		theme.Icon = icon[0]
		theme.Glyph = icon[1]
	}
	if bg, ok := backgrounds[key]; ok {
		theme.Background = bg
	}
	return theme
}
