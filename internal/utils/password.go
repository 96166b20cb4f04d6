package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCheckerInterface определяет интерфейс для проверки паролей
type PasswordCheckerInterface interface {
	CheckPassword(password, hashedPassword string) error
}

// BcryptPasswordChecker реализует проверку паролей через bcrypt
type BcryptPasswordChecker struct{}

// CheckPassword сравнивает пароль с хешем
func (BcryptPasswordChecker) CheckPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// HashPassword создает хеш пароля с использованием bcrypt.
// Пароли нигде не хранятся в открытом виде, включая локальный режим.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword сравнивает пароль с хешем
func CheckPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
