package mockapi

import (
	"log/slog"

	"github.com/magabrotheeeer/movie-stream-client/internal/lib/password"
	"github.com/magabrotheeeer/movie-stream-client/internal/lib/sl"
	"github.com/magabrotheeeer/movie-stream-client/internal/models"
)

// seed наполняет хранилище стартовыми данными: две учётные записи
// (обычный пользователь без подписки и администратор), каталог фильмов
// и тарифные планы.
func (s *Server) seed() {
	seedUser := func(username, email, rawPassword string, isSuperuser bool) {
		hash, err := password.GetHash(rawPassword)
		if err != nil {
			s.log.Error("failed to hash seed password", sl.Err(err))
			return
		}
		s.store.addUser(username, email, hash, isSuperuser)
	}
	seedUser("testuser", "user@example.com", "password", false)
	seedUser("admin", "admin@example.com", "adminpassword", true)

	movies := []models.Movie{
		{
			Title:             "The Shawshank Redemption",
			Description:       "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
			ReleaseYear:       1994,
			Duration:          142,
			Genre:             "Drama",
			Director:          "Frank Darabont",
			Cast:              "Tim Robbins, Morgan Freeman, Bob Gunton",
			VideoURL:          "https://example.com/videos/shawshank-redemption.mp4",
			Rating:            9.3,
			TranscodingStatus: models.TranscodingComplete,
		},
		{
			Title:             "The Godfather",
			Description:       "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
			ReleaseYear:       1972,
			Duration:          175,
			Genre:             "Crime, Drama",
			Director:          "Francis Ford Coppola",
			Cast:              "Marlon Brando, Al Pacino, James Caan",
			VideoURL:          "https://example.com/videos/godfather.mp4",
			Rating:            9.2,
			TranscodingStatus: models.TranscodingComplete,
		},
		{
			Title:             "The Dark Knight",
			Description:       "When the menace known as the Joker wreaks havoc on the people of Gotham, Batman must accept one of the greatest tests of his ability to fight injustice.",
			ReleaseYear:       2008,
			Duration:          152,
			Genre:             "Action, Crime, Drama",
			Director:          "Christopher Nolan",
			Cast:              "Christian Bale, Heath Ledger, Aaron Eckhart",
			VideoURL:          "https://example.com/videos/dark-knight.mp4",
			Rating:            9.0,
			TranscodingStatus: models.TranscodingComplete,
		},
		{
			Title:             "Pulp Fiction",
			Description:       "The lives of two mob hitmen, a boxer, a gangster and his wife intertwine in four tales of violence and redemption.",
			ReleaseYear:       1994,
			Duration:          154,
			Genre:             "Crime, Drama",
			Director:          "Quentin Tarantino",
			Cast:              "John Travolta, Uma Thurman, Samuel L. Jackson",
			VideoURL:          "https://example.com/videos/pulp-fiction.mp4",
			Rating:            8.9,
			TranscodingStatus: models.TranscodingComplete,
		},
		{
			Title:             "Inception",
			Description:       "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
			ReleaseYear:       2010,
			Duration:          148,
			Genre:             "Action, Adventure, Sci-Fi",
			Director:          "Christopher Nolan",
			Cast:              "Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page",
			VideoURL:          "https://example.com/videos/inception.mp4",
			Rating:            8.8,
			// Свежая загрузка: транскодировка ещё идёт, наблюдатель
			// увидит переход PROCESSING -> COMPLETE.
			TranscodingStatus: models.TranscodingProcessing,
		},
		{
			Title:             "The Matrix",
			Description:       "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.",
			ReleaseYear:       1999,
			Duration:          136,
			Genre:             "Action, Sci-Fi",
			Director:          "Lana Wachowski, Lilly Wachowski",
			Cast:              "Keanu Reeves, Laurence Fishburne, Carrie-Anne Moss",
			VideoURL:          "https://example.com/videos/matrix.mp4",
			Rating:            8.7,
			TranscodingStatus: models.TranscodingComplete,
		},
	}
	for _, m := range movies {
		s.store.addMovie(m)
	}

	s.store.plans = []models.Plan{
		{ID: 1, Name: "Basic", Description: "HD streaming on one device", Price: 199, DurationDays: 30},
		{ID: 2, Name: "Standard", Description: "Full HD streaming on two devices", Price: 399, DurationDays: 30},
		{ID: 3, Name: "Premium", Description: "4K streaming on four devices", Price: 599, DurationDays: 30},
	}

	s.log.Info("mock data seeded",
		slog.Int("users", 2),
		slog.Int("movies", len(movies)),
		slog.Int("plans", len(s.store.plans)))
}
