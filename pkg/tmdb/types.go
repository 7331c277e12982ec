package tmdb

import "encoding/json"

// Movie is the summary record returned by movie search. The typed fields are
// decoded for convenience; Raw keeps the provider object, which is what
// MarshalJSON emits so summaries relay unchanged.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int     `json:"vote_count,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`

	Raw json.RawMessage `json:"-"`
}

type movieFields Movie

func (m *Movie) UnmarshalJSON(data []byte) error {
	var f movieFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Movie(f)
	m.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (m Movie) MarshalJSON() ([]byte, error) {
	if len(m.Raw) > 0 {
		return m.Raw, nil
	}
	return json.Marshal(movieFields(m))
}

// SearchResponse is one page of movie search results.
type SearchResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Detail is the provider's movie detail document relayed as-is.
type Detail map[string]any

// ID returns the numeric movie id when present.
func (d Detail) ID() int64 {
	switch v := d["id"].(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	}
	return 0
}

// Title returns the movie title when present.
func (d Detail) Title() string {
	s, _ := d["title"].(string)
	return s
}
