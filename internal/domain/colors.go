package domain

// AssignColors maps each subject to a palette entry in first-seen order,
// cycling when subjects outnumber colors.
func AssignColors(subjects []string, palette []string) map[string]string {
	colors := make(map[string]string)
	if len(palette) == 0 {
		return colors
	}
	for _, subject := range subjects {
		if _, ok := colors[subject]; ok {
			continue
		}
		colors[subject] = palette[len(colors)%len(palette)]
	}
	return colors
}
