package usecase

import (
	"time"

	"face-attendance-backend/internal/model"
	"face-attendance-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserUsecase struct {
	repo      *repository.UserRepository
	jwtSecret []byte
}

func NewUserUsecase(repo *repository.UserRepository, jwtSecret string) *UserUsecase {
	return &UserUsecase{repo: repo, jwtSecret: []byte(jwtSecret)}
}

func (u *UserUsecase) Register(name, username, password string) error {
	// 1. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// 2. Save to database
	user := model.User{
		Name:     name,
		Username: username,
		Password: string(hashedPassword),
	}
	return u.repo.Create(user)
}

func (u *UserUsecase) Login(username, password string) (string, error) {
	// 1. Look up the user
	user, err := u.repo.GetByUsername(username)
	if err != nil {
		return "", err
	}

	// 2. Compare password against the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", err
	}

	// 3. Issue a JWT, expires in 24 hours
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.jwtSecret)
}
