package lostfound

import "time"

type ReportType string

const (
	TypeLost  ReportType = "lost"
	TypeFound ReportType = "found"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusFound    Status = "found"   // solo reportes lost: la mascota apareció
	StatusClaimed  Status = "claimed" // solo reportes found: el dueño la retiró
)

type Report struct {
	ID           string
	Type         ReportType
	UserID       string
	PetName      string
	PetType      string
	Breed        string
	Color        string
	Location     string
	Lat          float64 // opcionales; 0,0 = sin coordenadas
	Lng          float64
	Date         string
	Description  string
	ImageURL     string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Status       Status
	MatchedWith  string // id del reporte found que resolvió este lost
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
