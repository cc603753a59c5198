package models

import (
	"math"
	"time"
)

type User struct {
	ID                     int64      `json:"id" db:"id"`
	Username               string     `json:"username" db:"username"`
	Email                  string     `json:"email" db:"email"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	AboutMe                string     `json:"aboutMe" db:"about_me"`
	AvatarURL              string     `json:"avatarUrl" db:"avatar_url"`
	LastSeen               time.Time  `json:"lastSeen" db:"last_seen"`
	RefreshToken           *string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`
}

type Post struct {
	ID        int64     `json:"id" db:"id"`
	Body      string    `json:"body" db:"body"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	UserID    int64     `json:"userId" db:"user_id"`
	Language  string    `json:"language" db:"language"`
	Author    string    `json:"author" db:"author"`
}

// Follow is a directed follower -> followed edge.
type Follow struct {
	FollowerID int64     `json:"followerId" db:"follower_id"`
	FollowedID int64     `json:"followedId" db:"followed_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type FollowCounts struct {
	Followers int `json:"followers" db:"followers"`
	Following int `json:"following" db:"following"`
}

type RowCounts struct {
	Users     int `json:"users" db:"users"`
	Posts     int `json:"posts" db:"posts"`
	Followers int `json:"followers" db:"followers"`
}

// Page is one slice of a feed ordered by (timestamp, id) descending.
type Page struct {
	Items   []Post `json:"items"`
	Page    int    `json:"page"`
	PerPage int    `json:"perPage"`
	Total   int    `json:"total"`
	HasNext bool   `json:"hasNext"`
	HasPrev bool   `json:"hasPrev"`
	NextNum int    `json:"nextNum,omitempty"`
	PrevNum int    `json:"prevNum,omitempty"`
}

// NewPage fills the navigation fields from the total row count. It never
// multiplies the page number, so any page value is safe.
func NewPage(items []Post, page, perPage, total int) *Page {
	if items == nil {
		items = []Post{}
	}

	lastPage := 0
	if perPage > 0 && total > 0 {
		lastPage = (total + perPage - 1) / perPage
	}

	p := &Page{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		HasNext: page < lastPage,
		HasPrev: page > 1,
	}
	if p.HasNext {
		p.NextNum = page + 1
	}
	if p.HasPrev {
		p.PrevNum = page - 1
	}

	return p
}

// Offset returns the row offset of a 1-indexed page. Offsets that do not
// fit in an int saturate at math.MaxInt, which is past any real feed.
func Offset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}
