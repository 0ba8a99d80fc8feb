package domain

import (
	"time"
)

type AdminSessionRequest struct {
	Passkey string `json:"passkey" binding:"required,len=6,numeric"`
}

type AdminToken struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
