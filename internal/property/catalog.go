package property

// Reference data for the location pickers and facility tags.

// Countries lists the markets listings can be created in.
var Countries = []string{"India"}

// DefaultCountry is used when a draft leaves the country empty.
const DefaultCountry = "India"

// States lists the supported states in display order.
var States = []string{
	"Delhi", "Maharashtra", "Karnataka", "Tamil Nadu", "Uttar Pradesh", "Gujarat", "West Bengal",
}

var stateDistricts = map[string][]string{
	"Delhi":         {"New Delhi", "North Delhi", "South Delhi", "East Delhi", "West Delhi", "Central Delhi"},
	"Maharashtra":   {"Mumbai City", "Mumbai Suburban", "Pune", "Thane", "Nagpur", "Nashik"},
	"Karnataka":     {"Bangalore Urban", "Bangalore Rural", "Mysore", "Hubli", "Mangalore"},
	"Tamil Nadu":    {"Chennai", "Coimbatore", "Madurai", "Salem", "Trichy"},
	"Uttar Pradesh": {"Lucknow", "Kanpur", "Agra", "Varanasi", "Noida"},
	"Gujarat":       {"Ahmedabad", "Surat", "Vadodara", "Rajkot"},
	"West Bengal":   {"Kolkata", "Howrah", "Hooghly", "Darjeeling"},
}

var districtAreas = map[string][]string{
	"South Delhi":     {"Saket", "Hauz Khas", "Greater Kailash", "Malviya Nagar", "Green Park"},
	"New Delhi":       {"Connaught Place", "Chanakyapuri", "Lodhi Colony"},
	"Mumbai City":     {"Colaba", "Worli", "Parel", "Dadra"},
	"Pune":            {"Koregaon Park", "Kothrud", "Baner", "Viman Nagar"},
	"Bangalore Urban": {"HSR Layout", "Indiranagar", "Koramangala", "Whitefield", "JP Nagar"},
	"Chennai":         {"Adyar", "T. Nagar", "Mylapore", "Anna Nagar"},
}

// Facilities lists the facility tags a listing can carry.
var Facilities = []string{
	"WiFi", "Parking", "Gym", "Power Backup", "Air Conditioning", "CCTV", "Lift", "Security", "Swimming Pool", "Modular Kitchen",
}

// DistrictsFor returns the districts of a state. An unset or unknown
// state has no districts.
func DistrictsFor(state string) []string {
	return append([]string{}, stateDistricts[state]...)
}

// AreasFor returns the known areas of a district, if any.
func AreasFor(district string) []string {
	return append([]string{}, districtAreas[district]...)
}

// IsKnownState reports whether state is one of States.
func IsKnownState(state string) bool {
	_, ok := stateDistricts[state]
	return ok
}

// DistrictInState reports whether district belongs to state.
func DistrictInState(state, district string) bool {
	for _, d := range stateDistricts[state] {
		if d == district {
			return true
		}
	}
	return false
}

// IsKnownFacility reports whether f is one of Facilities.
func IsKnownFacility(f string) bool {
	for _, known := range Facilities {
		if known == f {
			return true
		}
	}
	return false
}
