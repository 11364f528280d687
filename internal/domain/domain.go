// Package domain contains the core data structures for the application,
// independent of the database or API layers.
package domain

import "time"

// Topic is a subject-matter category grouping downloadable resources.
type Topic struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	LongDescription string    `json:"long_description"`
	Icon            string    `json:"icon"`
	Color           string    `json:"color"`
	TextColor       string    `json:"text_color"`
	CreatedAt       time.Time `json:"created_at"`
}

// Resource is a downloadable learning artifact belonging to exactly one topic.
type Resource struct {
	ID          string    `json:"id"`
	TopicID     string    `json:"topic_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FilePath    string    `json:"file_path"`
	FileSize    string    `json:"file_size"`
	FileType    string    `json:"file_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// RelatedTopicLink is a directional link between two topics. Links are not
// necessarily symmetric.
type RelatedTopicLink struct {
	ID             string `json:"id"`
	TopicID        string `json:"topic_id"`
	RelatedTopicID string `json:"related_topic_id"`
}

// SavedResource is a per-account bookmark on a resource. The
// (UserID, ResourceID) pair is unique at any instant.
type SavedResource struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ResourceID string    `json:"resource_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Profile holds the per-account display data kept alongside the auth record.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Grade     string    `json:"grade,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
