package service

import (
	"crypto/subtle"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminService autentica al administrador contra credenciales de
// configuracion. Si hay un hash bcrypt configurado se usa ese; si no, se
// compara la contraseña plana en tiempo constante.
type AdminService struct {
	logger       *zap.Logger
	username     string
	password     string
	passwordHash string
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotConfigured = errors.New("admin credentials not configured")
)

func NewAdminService(logger *zap.Logger, username, password, passwordHash string) *AdminService {
	return &AdminService{
		logger:       logger,
		username:     strings.TrimSpace(username),
		password:     password,
		passwordHash: strings.TrimSpace(passwordHash),
	}
}

// Login verifica usuario y contraseña; devuelve el username canonico.
func (s *AdminService) Login(username, password string) (string, error) {
	if s.username == "" || (s.password == "" && s.passwordHash == "") {
		return "", ErrAdminNotConfigured
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.username)) == 1

	var passOK bool
	if s.passwordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}

	if !userOK || !passOK {
		if s.logger != nil {
			s.logger.Warn("admin login failed", zap.String("username", username))
		}
		return "", ErrInvalidCredentials
	}
	return s.username, nil
}
