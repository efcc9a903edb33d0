package volunteers

import "time"

type ApplicationStatus string

const (
	AppPending  ApplicationStatus = "pending"
	AppApproved ApplicationStatus = "approved"
	AppRejected ApplicationStatus = "rejected"
)

type Application struct {
	ID           string
	UserID       string
	Name         string
	Email        string
	Phone        string
	Role         string
	Availability string
	Experience   string
	Motivation   string
	Status       ApplicationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Event struct {
	ID                string
	Title             string
	Description       string
	Date              string
	Time              string
	Location          string
	Address           string
	Responsibilities  string
	MaxVolunteers     int
	CurrentVolunteers int
	CreatedAt         time.Time
}

type RegistrationStatus string

const (
	RegPending  RegistrationStatus = "pending"
	RegApproved RegistrationStatus = "approved"
	RegRejected RegistrationStatus = "rejected"
)

type Registration struct {
	ID        string
	EventID   string
	UserID    string
	Name      string
	Email     string
	Status    RegistrationStatus
	CreatedAt time.Time
}
