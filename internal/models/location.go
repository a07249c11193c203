package models

// Location is the canonical area/city/district form produced by the
// location resolver. All comparisons between seeker and company locations
// are exact string equality on these fields.
type Location struct {
	Area     string `json:"area" bson:"area"`
	City     string `json:"city" bson:"city"`
	District string `json:"district" bson:"district"`
}

func (l Location) Empty() bool {
	return l.Area == "" && l.City == "" && l.District == ""
}
