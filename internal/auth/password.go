package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/repository"
)

// ErrInvalidCredentials is returned for an unknown user, an inactive user or
// a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login checks a username and password against the user store.
func Login(users *repository.UserRepo, username, password string) (*models.User, error) {
	u, err := users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive || u.PasswordHash == "" || !CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
