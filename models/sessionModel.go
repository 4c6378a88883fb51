package models

import "time"

// SavedCookie is a backend auth cookie captured at login and replayed on
// every subsequent backend call for the session.
type SavedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Session is the portal-side session record persisted in Redis. The access
// token is informational; authentication against the backend rides on the
// replayed cookies.
type Session struct {
	SessionID      string        `json:"session_id"`
	DoctorName     string        `json:"doctorName"`
	Username       string        `json:"username"`
	AccessToken    string        `json:"access_token"`
	BackendCookies []SavedCookie `json:"backend_cookies"`
	CreatedAt      time.Time     `json:"created_at"`
}
