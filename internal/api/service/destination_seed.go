package service

import (
	"time"

	"ctchen222/rehla/internal/api/models"

	"github.com/google/uuid"
)

// seedNamespace derives stable ids for the built-in catalog.
var seedNamespace = uuid.MustParse("6f2d8c1e-4b7a-4e39-9d1c-3a5e7b9f0c24")

type seed struct {
	title, location, description, imageURL, region string
}

var catalogSeeds = []seed{
	{"Santorini", "Greece", "Famous for its stunning sunsets, white-washed buildings, and crystal-clear waters of the Aegean Sea.", "https://images.unsplash.com/photo-1613395877344-13d4a8e0d49e?auto=format&fit=crop&w=1200&q=80", "Europe"},
	{"Bali", "Indonesia", "A tropical paradise known for its lush rice terraces, ancient temples, and vibrant culture.", "https://images.unsplash.com/photo-1537996194471-e657df975ab4?auto=format&fit=crop&w=1200&q=80", "Asia"},
	{"Machu Picchu", "Peru", "The iconic Incan citadel set high in the Andes Mountains, a UNESCO World Heritage site.", "https://images.unsplash.com/photo-1587595431973-160d0d94add1?auto=format&fit=crop&w=1200&q=80", "South America"},
	{"Maldives", "Maldives", "Crystal clear waters, overwater bungalows, and some of the world's best diving spots.", "https://images.unsplash.com/photo-1514282401047-d79a71a590e8?auto=format&fit=crop&w=1200&q=80", "Asia"},
	{"Paris", "France", "The City of Light, home to the Eiffel Tower, world-class museums, and romantic streets.", "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?auto=format&fit=crop&w=1200&q=80", "Europe"},
	{"Tokyo", "Japan", "A fascinating blend of ancient temples and ultra-modern technology in one vibrant city.", "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?auto=format&fit=crop&w=1200&q=80", "Asia"},
	{"New York City", "USA", "The city that never sleeps - iconic skyline, Broadway shows, and endless attractions.", "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?auto=format&fit=crop&w=1200&q=80", "North America"},
	{"Dubai", "UAE", "A modern marvel with stunning architecture, luxury shopping, and desert adventures.", "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?auto=format&fit=crop&w=1200&q=80", "Middle East"},
	{"Safari in Serengeti", "Tanzania", "Witness the great migration and see Africa's incredible wildlife in their natural habitat.", "https://images.unsplash.com/photo-1516426122078-c23e76319801?auto=format&fit=crop&w=1200&q=80", "Africa"},
	{"Great Barrier Reef", "Australia", "The world's largest coral reef system, a paradise for divers and marine life enthusiasts.", "https://images.unsplash.com/photo-1559128010-7c1ad6e1b6a5?auto=format&fit=crop&w=1200&q=80", "Oceania"},
	{"Iceland", "Iceland", "Land of fire and ice - Northern Lights, geysers, waterfalls, and volcanic landscapes.", "https://images.unsplash.com/photo-1504829857797-ddff29c27927?auto=format&fit=crop&w=1200&q=80", "Europe"},
	{"Marrakech", "Morocco", "Vibrant souks, beautiful riads, and the magic of North African culture.", "https://images.unsplash.com/photo-1597212618440-806262de4f6b?auto=format&fit=crop&w=1200&q=80", "Africa"},
}

// SeedDestinations returns the built-in catalog stamped with now.
func SeedDestinations(now time.Time) []*models.Destination {
	out := make([]*models.Destination, 0, len(catalogSeeds))
	for _, s := range catalogSeeds {
		out = append(out, &models.Destination{
			ID:          uuid.NewSHA1(seedNamespace, []byte(s.title)).String(),
			Title:       s.title,
			Location:    s.location,
			Description: s.description,
			ImageURL:    s.imageURL,
			Region:      s.region,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return out
}
