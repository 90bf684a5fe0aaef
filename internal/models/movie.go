package models

// Статусы фоновой транскодировки видео. PROCESSING — единственный
// нетерминальный статус: пока он держится, клиент продолжает опрос.
const (
	TranscodingProcessing = "PROCESSING"
	TranscodingComplete   = "COMPLETE"
	TranscodingFailed     = "FAILED"
)

// Movie представляет фильм каталога.
type Movie struct {
	ID                int     `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	ReleaseYear       int     `json:"release_year"`
	Duration          int     `json:"duration"` // Длительность в минутах
	Genre             string  `json:"genre"`
	Director          string  `json:"director"`
	Cast              string  `json:"cast"`
	PosterURL         string  `json:"poster_url"`
	VideoURL          string  `json:"video_url"`
	Rating            float64 `json:"rating"`
	TranscodingStatus string  `json:"transcoding_status,omitempty"`
}

// TranscodingStatus описывает состояние фоновой обработки видео фильма.
type TranscodingStatus struct {
	MovieID      int    `json:"movie_id"`
	Status       string `json:"transcoding_status"`
	IsTranscoded bool   `json:"is_transcoded"`
	StreamingURL string `json:"streaming_url,omitempty"`
}

// Terminal сообщает, достигла ли транскодировка конечного состояния.
// После терминального статуса опрос должен быть остановлен.
func (t TranscodingStatus) Terminal() bool {
	return t.Status != TranscodingProcessing
}
