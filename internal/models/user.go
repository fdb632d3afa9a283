// Package models contains the view-model types shared by the store and its consumers.
package models

// User is the authenticated person as the presentation layer sees them,
// normalized from the hosted service's profiles table.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	Avatar    string `json:"avatar"`
	XP        int    `json:"xp"`
	Level     string `json:"level"`
	Coins     int    `json:"coins"`
	IsPremium bool   `json:"is_premium"`
	Email     string `json:"email,omitempty"`
}
