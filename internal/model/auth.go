package model

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the editor login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued editor token.
type LoginResponse struct {
	Token    string `json:"token"`
	EditorID string `json:"editor_id"`
}

// EditorClaims identifies the operator behind a correction, recorded in the
// edit history for attribution.
type EditorClaims struct {
	EditorID string `json:"editorId"`
	jwt.RegisteredClaims
}
