package community

import "time"

// PostType distingue posts de usuarios de las alertas automáticas.
type PostType string

const (
	PostTypeUser      PostType = "user"
	PostTypeLostAlert PostType = "lost_pet"
)

// Post es una publicación del feed comunitario.
// LostReportID referencia el reporte de mascota perdida que originó una
// alerta; al resolverse el reporte, el post se elimina.
type Post struct {
	ID       string
	UserID   string
	UserName string

	Type    PostType
	Title   string
	Content string

	ImageURL     string
	LostReportID string

	CreatedAt time.Time
}
