package providers

import (
	"time"

	"github.com/pulsefeed/aggregator/internal/models"
)

// SampleItems returns the built-in fallback datasets keyed by category.
// These are served when a live provider fails, so the sets are small and
// intentionally evergreen. There is no sample set for general news; a stale
// headline is worse than an empty section.
func SampleItems() map[models.Category][]models.ContentItem {
	return map[models.Category][]models.ContentItem{
		models.CategoryMovies: {
			sampleItem(models.CategoryMovies,
				"The Matrix Resurrections",
				"Neo must choose once again between reality and illusion.",
				"https://image.tmdb.org/t/p/w500/8c4a8kE7PizaGQQnditMmI1xbRp.jpg",
				"https://www.themoviedb.org/movie/624860",
				"2021-12-22T00:00:00Z", "TMDB"),
			sampleItem(models.CategoryMovies,
				"Spider-Man: No Way Home",
				"Peter Parker seeks help from Doctor Strange when his identity is revealed.",
				"https://image.tmdb.org/t/p/w500/1g0dhYtq4irTY1GPXvft6k4YLjm.jpg",
				"https://www.themoviedb.org/movie/634649",
				"2021-12-17T00:00:00Z", "TMDB"),
		},
		models.CategoryMusic: {
			sampleItem(models.CategoryMusic,
				"Bad Habits - Ed Sheeran",
				"Latest hit single from Ed Sheeran",
				"https://i.scdn.co/image/ab67616d0000b2737ccca9fbcf070ebd87db3f13",
				"https://open.spotify.com/track/6habFhsOp2NvshLv26DqMb",
				"2021-06-25T00:00:00Z", "Spotify"),
			sampleItem(models.CategoryMusic,
				"Stay - The Kid LAROI & Justin Bieber",
				"Collaborative hit between The Kid LAROI and Justin Bieber",
				"https://i.scdn.co/image/ab67616d0000b273938ebc4a5dde0264b4c3ba8e",
				"https://open.spotify.com/track/5PjdY0CKGZdEuoNab3yDmX",
				"2021-07-09T00:00:00Z", "Spotify"),
		},
		models.CategoryTechnology: {
			sampleItem(models.CategoryTechnology,
				"OpenAI Releases GPT-4 Turbo",
				"New model with improved capabilities and lower costs",
				"https://images.unsplash.com/photo-1677442136019-21780ecad995?w=500",
				"https://openai.com/gpt-4",
				"2024-01-15T00:00:00Z", "OpenAI"),
			sampleItem(models.CategoryTechnology,
				"Apple Vision Pro Launch",
				"Apple's revolutionary spatial computing device",
				"https://images.unsplash.com/photo-1592659762303-90081d34b277?w=500",
				"https://apple.com/vision-pro",
				"2024-02-02T00:00:00Z", "Apple"),
		},
		models.CategorySports: {
			sampleItem(models.CategorySports,
				"ICC Cricket World Cup 2023",
				"India wins the Cricket World Cup after 12 years",
				"https://images.unsplash.com/photo-1540747913346-19e32dc3e97e?w=500",
				"https://icc-cricket.com",
				"2023-11-19T00:00:00Z", "ICC"),
			sampleItem(models.CategorySports,
				"FIFA World Cup 2022 Highlights",
				"Argentina defeats France in thrilling final",
				"https://images.unsplash.com/photo-1574629810360-7efbbe195018?w=500",
				"https://fifa.com",
				"2022-12-18T00:00:00Z", "FIFA"),
		},
		models.CategoryEntertainment: {
			sampleItem(models.CategoryEntertainment,
				"Taylor Swift Eras Tour",
				"Record-breaking concert tour continues worldwide",
				"https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=500",
				"https://taylorswift.com",
				"2024-01-10T00:00:00Z", "Entertainment Weekly"),
			sampleItem(models.CategoryEntertainment,
				"Marvel Phase 5 Announcement",
				"New superhero movies and series revealed",
				"https://images.unsplash.com/photo-1635805737707-575885ab0820?w=500",
				"https://marvel.com",
				"2024-01-05T00:00:00Z", "Marvel Studios"),
		},
	}
}

func sampleItem(category models.Category, title, description, imageURL, itemURL, publishedAt, source string) models.ContentItem {
	ts, _ := time.Parse(time.RFC3339, publishedAt)
	return models.ContentItem{
		ID:          models.ContentID(category, title, itemURL),
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		URL:         itemURL,
		Category:    category,
		PublishedAt: ts,
		Source:      source,
	}
}
