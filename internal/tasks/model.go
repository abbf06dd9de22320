package tasks

type Task struct {
	ID          int64  `db:"id" json:"id"`
	Description string `db:"description" json:"description"`
	Status      bool   `db:"status" json:"status"`
}
