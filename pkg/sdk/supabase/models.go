package supabase

import "time"

type User struct {
	ID           string         `json:"id"`
	Aud          string         `json:"aud"`
	Role         string         `json:"role"`
	Email        string         `json:"email"`
	CreatedAt    time.Time      `json:"created_at"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Err     string `json:"error"`
	Desc    string `json:"error_description"`
}

func (e ErrorResponse) Text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Desc != "":
		return e.Desc
	default:
		return e.Err
	}
}
