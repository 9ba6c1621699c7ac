package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// User é o usuário habilitado a acessar os relatórios. Os usuários são
// semeados pela configuração; não há cadastro via API.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Active       bool   `json:"active"`
}

type Claims struct {
	UserID    int
	UserName  string
	UserEmail string
	jwt.RegisteredClaims
}
