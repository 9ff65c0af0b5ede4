package domain

import "time"

type StoryAuthor struct {
	ID             string `json:"_id" validate:"required"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Story is a newly published story, pushed to every follower of its author.
type Story struct {
	ID        string      `json:"_id" validate:"required"`
	Author    StoryAuthor `json:"author"`
	Image     string      `json:"image,omitempty" validate:"required_without=Video"`
	Video     string      `json:"video,omitempty" validate:"required_without=Image"`
	Text      string      `json:"text,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// StoryView tells an author how many people watched a story so far.
type StoryView struct {
	StoryID   string `json:"storyId"`
	UserID    string `json:"userId"`
	ViewCount int    `json:"viewCount"`
}
