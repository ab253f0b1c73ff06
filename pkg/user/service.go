package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/go-mail/mail"
	"golang.org/x/crypto/scrypt"
)

func NewService(logger *slog.Logger, repository *repository, dialer dialer) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
		dialer:     dialer,
	}
}

type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type Service struct {
	logger     *slog.Logger
	repository *repository
	dialer     dialer
}

func (s Service) SignUp(ctx context.Context, name string, email string, password string) (*model.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
	}

	err = s.repository.create(ctx, user)
	if err != nil {
		return nil, err
	}

	// the welcome email is best effort, sign up shouldn't depend on the mail relay
	if err := s.sendWelcomeEmail(user); err != nil {
		s.logger.WarnContext(ctx, "Failed to send welcome email", "error", err, "email", user.Email)
	}

	return user, nil
}

func (s Service) sendWelcomeEmail(user *model.User) error {
	m := mail.NewMessage()
	m.SetHeader("From", "GatherHub <no-reply@gatherhub.dev>")
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Welcome to GatherHub")
	body := fmt.Sprintf("Hello %s, your account is ready. Join a group and start gathering!", user.Name)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func hashPassword(password string) (string, error) {
	// example for making salt - https://play.golang.org/p/_Aw6WeWC42I
	salt := make([]byte, 32)
	_, err := rand.Read(salt)
	if err != nil {
		return "", err
	}

	// using recommended cost parameters from - https://godoc.org/golang.org/x/crypto/scrypt
	hash, err := scrypt.Key([]byte(password), salt, 32768, 8, 1, 32)
	if err != nil {
		return "", err
	}

	hashedPassword := fmt.Sprintf("%s.%s", hex.EncodeToString(hash), hex.EncodeToString(salt))

	return hashedPassword, nil
}

func (s Service) SignIn(ctx context.Context, email string, password string) (*model.User, error) {
	unauthorizedError := "invalid email and password combination"

	user, err := s.repository.findByEmail(ctx, email)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized("%s", unauthorizedError)
		}
		return nil, err
	}

	match, err := comparePasswords(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	if !match {
		return nil, errdef.NewUnauthorized("%s", unauthorizedError)
	}

	return user, nil
}

func comparePasswords(storedPassword string, suppliedPassword string) (bool, error) {
	passwordAndSalt := strings.Split(storedPassword, ".")
	if len(passwordAndSalt) != 2 {
		return false, fmt.Errorf("wrong password/salt format")
	}

	salt, err := hex.DecodeString(passwordAndSalt[1])
	if err != nil {
		return false, fmt.Errorf("unable to verify user password")
	}

	hash, err := scrypt.Key([]byte(suppliedPassword), salt, 32768, 8, 1, 32)
	if err != nil {
		return false, err
	}

	return hex.EncodeToString(hash) == passwordAndSalt[0], nil
}

// Update a user's profile. Users can only update their own profile, the email and password are
// changed through their own flows.
func (s Service) Update(ctx context.Context, actor *model.User, id uint, name, bio, location, interests string) (*model.User, error) {
	if actor.ID != id {
		return nil, errdef.NewForbidden("users can only update their own profile")
	}

	if strings.TrimSpace(name) == "" {
		return nil, errdef.NewBadRequest("name can't be empty")
	}

	user, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Bio = bio
	user.Location = location
	user.Interests = interests

	if err := s.repository.update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s Service) FindById(ctx context.Context, id uint) (*model.User, error) {
	return s.repository.findById(ctx, id)
}

func (s Service) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.repository.findAll(ctx)
}
