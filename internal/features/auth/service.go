package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-recruit/internal/apperr"
	"go-recruit/internal/config"
	"go-recruit/internal/email"
	"go-recruit/internal/features/user"
	"go-recruit/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

type LoginResult struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type AuthServiceImpl struct {
	UserRepo user.UserRepository
	Sender   email.Sender
	Config   *config.Config
	Logger   *zap.Logger
}

func NewAuthService(userRepo user.UserRepository, sender email.Sender, cfg *config.Config, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{
		UserRepo: userRepo,
		Sender:   sender,
		Config:   cfg,
		Logger:   logger,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	u, err := s.UserRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Authentication("Invalid email or password")
		}
		return nil, apperr.Storage(err)
	}
	if u.Status != user.StatusActive {
		return nil, apperr.Authentication("Account is disabled")
	}
	if !utils.CheckPassword(u.Password, password) {
		return nil, apperr.Authentication("Invalid email or password")
	}

	token, err := utils.GenerateToken(u.ID.Hex(), u.Role, u.Email, u.FirstName, u.LastName)
	if err != nil {
		return nil, apperr.Unknown(err)
	}
	return &LoginResult{Token: token, User: u}, nil
}

// ForgotPassword always succeeds from the caller's perspective so the
// endpoint cannot be used to probe which emails are registered.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, emailAddr string) error {
	u, err := s.UserRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.Logger.Error("password reset lookup failed", zap.Error(err))
		}
		return nil
	}

	token, err := utils.GeneratePasswordResetToken(u.ID.Hex(), resetTokenTTL)
	if err != nil {
		s.Logger.Error("password reset token generation failed", zap.Error(err))
		return nil
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.Config.FrontendURL, token)
	body, err := email.RenderPasswordReset(email.PasswordResetData{
		FirstName: u.FirstName,
		Link:      link,
	})
	if err != nil {
		s.Logger.Error("password reset email render failed", zap.Error(err))
		return nil
	}

	msg := &email.Email{
		From:     s.Config.EmailFrom,
		To:       []string{u.Email},
		Subject:  "Reset your password",
		HtmlBody: body,
	}
	if err := s.Sender.Send(msg); err != nil {
		s.Logger.Error("password reset email failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := utils.ValidatePurposeToken(token, utils.TokenTypePasswordReset)
	if err != nil {
		return apperr.Authentication("Reset link is invalid or has expired")
	}
	if len(newPassword) < 8 {
		return apperr.Validation("Password must be at least 8 characters")
	}

	u, err := s.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("User not found")
		}
		return apperr.Storage(err)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperr.Unknown(err)
	}
	if err := s.UserRepo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return apperr.Storage(err)
	}

	s.Logger.Info("password reset completed", zap.String("user_id", u.ID.Hex()))
	return nil
}
