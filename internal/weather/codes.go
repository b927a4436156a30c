package weather

import "fmt"

var descriptions = map[int]string{
	0:  "Selkeää",
	1:  "Melkein selkeää",
	2:  "Puolipilvistä",
	3:  "Pilvistä",
	45: "Sumua",
	48: "Jäätävää sumua",
	61: "Vesisadetta",
	71: "Lumisadetta",
	80: "Sadekuuroja",
	95: "Ukkosta",
}

// Description returns the display text for a WMO weather code.
func Description(code int) string {
	if text, ok := descriptions[code]; ok {
		return text
	}
	return fmt.Sprintf("Weather (code %d)", code)
}
