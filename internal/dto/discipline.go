package dto

type Discipline struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
