package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xrack/sales-insights-api/internal/config"
	"github.com/xrack/sales-insights-api/internal/domain"
	"github.com/xrack/sales-insights-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator é o portão de acesso aos relatórios: valida credenciais e
// tokens dos usuários semeados pela configuração.
type Authenticator interface {
	LoginUser(email, password string) (string, error)
	GetUserProfile(userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg   *config.Config
	users []*domain.User
}

// NewService monta o serviço com os usuários definidos na configuração.
// Não existe cadastro pela API; alterar usuários é alterar o ambiente.
func NewService(cfg *config.Config) Authenticator {
	users := make([]*domain.User, 0, len(cfg.Auth.Users))
	for i, seed := range cfg.Auth.Users {
		users = append(users, &domain.User{
			ID:           i + 1,
			Name:         seed.Name,
			Email:        handleEmail(seed.Email),
			PasswordHash: seed.PasswordHash,
			Active:       true,
		})
	}

	return &Service{cfg: cfg, users: users}
}

func (s *Service) LoginUser(email, password string) (string, error) {
	// Validação de entrada
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	user := s.findByEmail(handleEmail(email))
	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	// Verificar senha
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	token, err := generateJWT(user, s.cfg.Auth.SecretKey)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) GetUserProfile(userID int) (*domain.User, error) {
	for _, user := range s.users {
		if user.ID == userID {
			return user, nil
		}
	}

	return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, fmt.Sprintf("usuário %d não encontrado", userID))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "token inválido")
	}

	return claims, nil
}

func (s *Service) findByEmail(email string) *domain.User {
	for _, user := range s.users {
		if user.Email == email {
			return user
		}
	}
	return nil
}

func handleEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func generateJWT(user *domain.User, secretKey string) (string, error) {
	claims := domain.Claims{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}
