package models

import "time"

// Category is an award category open for voting within an industry.
type Category struct {
	ID          string    `json:"id" mapstructure:"id"`
	Industry    string    `json:"industry" mapstructure:"industry"`
	Name        string    `json:"name" mapstructure:"name"`
	VotingStart time.Time `json:"voting_start" mapstructure:"-"`
	VotingEnd   time.Time `json:"voting_end" mapstructure:"-"`
	TotalVotes  int64     `json:"total_votes" mapstructure:"-"`
	CreatedBy   string    `json:"created_by,omitempty" mapstructure:"created_by"`
}

// Nominee is a votable option within a category. The distinguished "Other"
// placeholder collects free-text write-ins and carries no numeric tally of
// its own. Celebrity/movie display fields are denormalized onto the nominee
// by the catalog reader.
type Nominee struct {
	ID          string `json:"id" mapstructure:"id"`
	CategoryID  string `json:"category_id" mapstructure:"category_id"`
	CelebrityID string `json:"celebrity_id,omitempty" mapstructure:"celebrity_id"`
	MovieID     string `json:"movie_id,omitempty" mapstructure:"movie_id"`
	IsOther     bool   `json:"is_other" mapstructure:"-"`
	Votes       int64  `json:"votes" mapstructure:"-"`

	CelebrityName  string `json:"celebrity_name,omitempty" mapstructure:"-"`
	CelebrityImage string `json:"celebrity_image,omitempty" mapstructure:"-"`
	MovieTitle     string `json:"movie_title,omitempty" mapstructure:"-"`
	MoviePoster    string `json:"movie_poster,omitempty" mapstructure:"-"`
}

// CategoryWithNominees is what the catalog endpoints return: a category
// joined with its fully resolved nominees, "Other" sorted last.
type CategoryWithNominees struct {
	Category Category  `json:"category"`
	Nominees []Nominee `json:"nominees"`
}

// Celebrity and Movie are read-only catalog inputs; the voting workflow
// never writes to them.
type Celebrity struct {
	ID    string `json:"id" mapstructure:"id"`
	Name  string `json:"name" mapstructure:"name"`
	Image string `json:"image,omitempty" mapstructure:"image"`
}

type Movie struct {
	ID     string `json:"id" mapstructure:"id"`
	Title  string `json:"title" mapstructure:"title"`
	Poster string `json:"poster,omitempty" mapstructure:"poster"`
}
