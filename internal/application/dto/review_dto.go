package dto

// ReviewRecord registro crudo de reseña.
type ReviewRecord struct {
	ID     string `json:"id"`
	Course *struct {
		Title string `json:"title"`
	} `json:"course"`
	Student *struct {
		FullName string `json:"full_name"`
	} `json:"student"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
	Approved  bool    `json:"is_approved"`
	CreatedAt string  `json:"created_at"`
}

// ReviewView fila de la cola de moderación.
type ReviewView struct {
	ID          string `json:"id"`
	CourseTitle string `json:"courseTitle"`
	StudentName string `json:"studentName"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	Approved    bool   `json:"approved"`
	CreatedAt   string `json:"createdAt"`
}
