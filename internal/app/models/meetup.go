package models

import "time"

// Location is the proposed meeting place of a meetup
type Location struct {
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Meetup represents a scheduled gathering with invited participants
type Meetup struct {
	ID            int64        `json:"id" db:"id"`
	CreatorID     int64        `json:"creatorId" db:"creator_id"`
	Title         string       `json:"title" db:"title"`
	Description   string       `json:"description" db:"description"`
	Location      Location     `json:"location"`
	ScheduledDate time.Time    `json:"scheduledDate" db:"scheduled_date"`
	Status        MeetupStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`

	// Related entities
	Creator      *User                `json:"creator,omitempty"`
	Participants []*MeetupParticipant `json:"participants,omitempty"`
}

// MeetupParticipant represents a user invited to a meetup with their response status
type MeetupParticipant struct {
	ID       int64             `json:"id" db:"id"`
	MeetupID int64             `json:"meetupId" db:"meetup_id"`
	UserID   int64             `json:"userId" db:"user_id"`
	Status   ParticipantStatus `json:"status" db:"status"`

	// Related entities
	User *User `json:"user,omitempty"`
}
