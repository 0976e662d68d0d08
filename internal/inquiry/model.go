package inquiry

import "time"

// JoinRequest is an application to join the team.
type JoinRequest struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName" validate:"notblank,max=100"`
	Email        string    `json:"email" validate:"required,email"`
	Phone        string    `json:"phone" validate:"required,phone"`
	Field        string    `json:"field" validate:"notblank,max=100"`
	Experience   string    `json:"experience" validate:"notblank,max=2000"`
	Portfolio    string    `json:"portfolio" validate:"omitempty,max=500"`
	Motivation   string    `json:"motivation" validate:"notblank,max=2000"`
	Contribution string    `json:"contribution" validate:"notblank,max=2000"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"notblank,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Subject   string    `json:"subject" validate:"notblank,max=200"`
	Message   string    `json:"message" validate:"notblank,max=4000"`
	CreatedAt time.Time `json:"createdAt"`
}
