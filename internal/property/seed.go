package property

import "time"

const day = 24 * time.Hour

// seedReview is attached to every seeded listing.
func seedReview(targetID string, now time.Time) Review {
	return Review{
		ID:           "r" + targetID,
		AuthorID:     "u1",
		AuthorName:   "Suresh Raina",
		AuthorAvatar: "https://i.pravatar.cc/150?u=suresh",
		TargetID:     targetID,
		Content:      "Amazing location and the landlord is very helpful. Highly recommended!",
		Rating:       5,
		Timestamp:    now.Add(-2 * day).UnixMilli(),
	}
}

func unsplash(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?auto=format&fit=crop&w=800&q=80"
}

// SeedProperties returns the mock listings the store starts with, newest
// first. createdAt values are relative to now.
func SeedProperties(now time.Time) []Property {
	seed := []Property{
		{
			ID:          "1",
			LandlordID:  "l1",
			Title:       "Modern 2BHK in Saket",
			Description: "Beautiful sunlight-facing apartment near Metro Station. Quiet neighborhood with 24/7 security.",
			Photos:      []string{unsplash("1522708323590-d24dbb6b0267"), unsplash("1502672260266-1c1ef2d93688")},
			Rent:        25000,
			Deposit:     50000,
			Location: Location{
				Country: "India", State: "Delhi", District: "South Delhi", City: "Saket", Area: "Block J",
				Address: "J-123, Saket", Landmark: "Near DLF Avenue", HouseNumber: "123",
				Coordinates: Coordinates{Lat: 28.5244, Lng: 77.2103},
			},
			Furnishing:      SemiFurnished,
			TenantType:      TenantBoth,
			FoodPreference:  FoodNonVeg,
			Facilities:      []string{"Parking", "Security", "Lift", "WiFi"},
			InterestedCount: 5,
		},
		{
			ID:          "2",
			LandlordID:  "l2",
			Title:       "Cozy Studio near HSR Layout",
			Description: "Perfect for bachelors working in nearby tech parks. Fully furnished with high-speed internet.",
			Photos:      []string{unsplash("1493809842364-78817add7ffb")},
			Rent:        12000,
			Deposit:     30000,
			Location: Location{
				Country: "India", State: "Karnataka", District: "Bangalore Urban", City: "HSR Layout", Area: "Sector 2",
				Address: "No 45, Sector 2", Landmark: "Near BDA Complex", HouseNumber: "45",
				Coordinates: Coordinates{Lat: 12.9141, Lng: 77.6411},
			},
			Furnishing:      Furnished,
			TenantType:      TenantBachelor,
			FoodPreference:  FoodVeg,
			Facilities:      []string{"WiFi", "CCTV", "Power Backup"},
			InterestedCount: 12,
		},
		{
			ID:          "3",
			LandlordID:  "l3",
			Title:       "Luxury 3BHK Penthouse",
			Description: "Spacious penthouse with a private terrace. Prime location in Koregaon Park.",
			Photos:      []string{unsplash("1600585154340-be6199bc3a07")},
			Rent:        85000,
			Deposit:     200000,
			Location: Location{
				Country: "India", State: "Maharashtra", District: "Pune", City: "Koregaon Park", Area: "Lane 7",
				Address: "Penthouse 1, Riverview", Landmark: "Near German Bakery", HouseNumber: "1",
				Coordinates: Coordinates{Lat: 18.5362, Lng: 73.8940},
			},
			Furnishing:      Furnished,
			TenantType:      TenantFamily,
			FoodPreference:  FoodNonVeg,
			Facilities:      []string{"Swimming Pool", "Gym", "Parking", "Modular Kitchen"},
			InterestedCount: 3,
		},
		{
			ID:          "4",
			LandlordID:  "l4",
			Title:       "Compact 1BHK in Andheri",
			Description: "Minimalist living for young professionals. Great connectivity to Western Express Highway.",
			Photos:      []string{unsplash("1536376074432-bf12178d1f4a")},
			Rent:        35000,
			Deposit:     100000,
			Location: Location{
				Country: "India", State: "Maharashtra", District: "Mumbai Suburban", City: "Andheri", Area: "West",
				Address: "Flat 402, Sunshine Apts", Landmark: "Near Shoppers Stop", HouseNumber: "402",
				Coordinates: Coordinates{Lat: 19.1136, Lng: 72.8697},
			},
			Furnishing:      Unfurnished,
			TenantType:      TenantBachelor,
			FoodPreference:  FoodNonVeg,
			Facilities:      []string{"Lift", "Security", "Power Backup"},
			InterestedCount: 8,
		},
		{
			ID:          "5",
			LandlordID:  "l5",
			Title:       "Heritage Villa in Mysore",
			Description: "Experience the royal charm. Traditional architecture with modern internal amenities.",
			Photos:      []string{unsplash("1580587771525-78b9dba3b914")},
			Rent:        45000,
			Deposit:     150000,
			Location: Location{
				Country: "India", State: "Karnataka", District: "Mysore", City: "Mysore", Area: "Jayalakshmipuram",
				Address: "22/A, Heritage Enclave", Landmark: "Near Palace Ground", HouseNumber: "22",
				Coordinates: Coordinates{Lat: 12.2958, Lng: 76.6394},
			},
			Furnishing:      SemiFurnished,
			TenantType:      TenantFamily,
			FoodPreference:  FoodVeg,
			Facilities:      []string{"Parking", "CCTV", "Modular Kitchen"},
			InterestedCount: 2,
		},
		{
			ID:          "6",
			LandlordID:  "l6",
			Title:       "Bachelor Pad in Noida Sector 62",
			Description: "Walkable distance to major IT hubs. Fully serviced apartment with laundry facilities.",
			Photos:      []string{unsplash("1524758631624-e2822e304c36")},
			Rent:        15000,
			Deposit:     30000,
			Location: Location{
				Country: "India", State: "Uttar Pradesh", District: "Noida", City: "Noida", Area: "Sector 62",
				Address: "Tower C, PG Heights", Landmark: "Near Stellar IT Park", HouseNumber: "C-501",
				Coordinates: Coordinates{Lat: 28.6258, Lng: 77.3639},
			},
			Furnishing:      Furnished,
			TenantType:      TenantBachelor,
			FoodPreference:  FoodNonVeg,
			Facilities:      []string{"WiFi", "Power Backup", "Gym"},
			InterestedCount: 25,
		},
		{
			ID:          "7",
			LandlordID:  "l7",
			Title:       "Sea Facing Apartment, Worli",
			Description: "Uninterrupted views of the Arabian Sea. Elite gated community with premium features.",
			Photos:      []string{unsplash("1512917774080-9991f1c4c750")},
			Rent:        120000,
			Deposit:     500000,
			Location: Location{
				Country: "India", State: "Maharashtra", District: "Mumbai City", City: "Worli", Area: "Worli Sea Face",
				Address: "Floor 18, Ocean Crest", Landmark: "Near Sea Link", HouseNumber: "1802",
				Coordinates: Coordinates{Lat: 19.0000, Lng: 72.8150},
			},
			Furnishing:      Furnished,
			TenantType:      TenantFamily,
			FoodPreference:  FoodNonVeg,
			Facilities:      []string{"Swimming Pool", "Gym", "Parking", "CCTV", "Lift"},
			InterestedCount: 4,
		},
		{
			ID:          "8",
			LandlordID:  "l8",
			Title:       "1BHK Near Anna Nagar",
			Description: "Well-ventilated flat in a residential hotspot. Easy access to shops and parks.",
			Photos:      []string{unsplash("1554995207-c18c203602cb")},
			Rent:        18000,
			Deposit:     60000,
			Location: Location{
				Country: "India", State: "Tamil Nadu", District: "Chennai", City: "Anna Nagar", Area: "Shanti Colony",
				Address: "4th Avenue, Green Leaf", Landmark: "Near Tower Park", HouseNumber: "44",
				Coordinates: Coordinates{Lat: 13.0850, Lng: 80.2101},
			},
			Furnishing:      SemiFurnished,
			TenantType:      TenantBoth,
			FoodPreference:  FoodVeg,
			Facilities:      []string{"Parking", "Security", "Lift"},
			InterestedCount: 7,
		},
		{
			ID:          "9",
			LandlordID:  "l9",
			Title:       "Contemporary Flat in Salt Lake",
			Description: "Modern interiors with a touch of elegance. Located in the tech hub of Kolkata.",
			Photos:      []string{unsplash("1560448204-61dc36dc98c8")},
			Rent:        28000,
			Deposit:     75000,
			Location: Location{
				Country: "India", State: "West Bengal", District: "Kolkata", City: "Kolkata", Area: "Salt Lake Sector V",
				Address: "Block EP, IT Towers", Landmark: "Near Wipro Circle", HouseNumber: "EP-12",
				Coordinates: Coordinates{Lat: 22.5726, Lng: 88.4339},
			},
			Furnishing:      Furnished,
			TenantType:      TenantBoth,
			FoodPreference:  FoodNonVeg,
			Facilities:      []string{"WiFi", "Power Backup", "Air Conditioning"},
			InterestedCount: 15,
		},
		{
			ID:          "10",
			LandlordID:  "l10",
			Title:       "Studio Apartment, Ahmedabad",
			Description: "Perfect for students or solo travelers. Close to top universities and shopping hubs.",
			Photos:      []string{unsplash("1598928506311-c55ded91a20c")},
			Rent:        9000,
			Deposit:     20000,
			Location: Location{
				Country: "India", State: "Gujarat", District: "Ahmedabad", City: "Ahmedabad", Area: "Navrangpura",
				Address: "Flat 10, Student Haven", Landmark: "Near Gujarat University", HouseNumber: "10",
				Coordinates: Coordinates{Lat: 23.0373, Lng: 72.5524},
			},
			Furnishing:      SemiFurnished,
			TenantType:      TenantBachelor,
			FoodPreference:  FoodVeg,
			Facilities:      []string{"WiFi", "CCTV"},
			InterestedCount: 30,
		},
	}

	for i := range seed {
		seed[i].Videos = []string{}
		seed[i].CreatedAt = now.Add(-time.Duration(i) * day).UnixMilli()
		seed[i].Reviews = []Review{seedReview(seed[i].ID, now)}
	}

	return seed
}
