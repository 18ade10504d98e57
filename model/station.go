package model

type Station struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Label is the text shown in pickers: the city, with the terminal name when it differs.
func (s Station) Label() string {
	if s.Name == "" || s.Name == s.City {
		return s.City
	}
	if s.City == "" {
		return s.Name
	}
	return s.City + " (" + s.Name + ")"
}
