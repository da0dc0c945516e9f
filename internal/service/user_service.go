package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"classroom/internal/media"
	"classroom/internal/metrics"
	"classroom/internal/model"
	"classroom/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// UserPage is one page of users plus the metadata needed to walk the rest.
type UserPage struct {
	Users []model.User
	Total int64
	Page  int
	Limit int
}

// LastPage is the number of the last non-empty page, at least 1.
func (p *UserPage) LastPage() int {
	if p.Total == 0 {
		return 1
	}
	last := int(p.Total) / p.Limit
	if int(p.Total)%p.Limit > 0 {
		last++
	}
	return last
}

// CreateUserInput is the payload of the store workflow.
type CreateUserInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Image       *Upload
}

type UserService struct {
	users    repository.UserRepositoryInterface
	uploader media.Uploader
	logger   *zap.Logger
	hashCost int
}

func NewUserService(users repository.UserRepositoryInterface, uploader media.Uploader, logger *zap.Logger) *UserService {
	return &UserService{
		users:    users,
		uploader: uploader,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *UserService) List(ctx context.Context, page, limit int) (*UserPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page > math.MaxInt/limit {
		return nil, NewValidationError("page", "max", "page is out of range")
	}

	users, total, err := s.users.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &UserPage{Users: users, Total: total, Page: page, Limit: limit}, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	email := normalizeEmail(in.Email)
	if err := s.checkEmail(ctx, email, nil); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	obj, err := s.upload(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:          uuid.New(),
		Name:        in.Name,
		Email:       email,
		Password:    hash,
		PhoneNumber: in.PhoneNumber,
	}
	if obj != nil {
		user.Image = &obj.URL
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.discard(ctx, obj)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	metrics.RecordWritesTotal.WithLabelValues("user", "create").Inc()
	return user, nil
}

// Update applies an administrative patch to the user with the given id.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error) {
	return s.update(ctx, id, patch)
}

// UpdateProfile applies a self-service patch. Password changes go through ChangePassword.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error) {
	patch.Password = nil
	return s.update(ctx, id, patch)
}

// ChangePassword replaces the password and nothing else.
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, password string) (*model.User, error) {
	return s.update(ctx, id, UserPatch{Password: &password})
}

// update runs the update workflow: resolve the target, check email
// uniqueness, upload the image if any, apply the patch and save. Nothing is
// uploaded or written when the target is missing or the email is taken.
func (s *UserService) update(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
		if err := s.checkEmail(ctx, email, &user.ID); err != nil {
			return nil, err
		}
	}

	var hashed *string
	if patch.Password != nil {
		hash, err := s.hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		hashed = &hash
	}

	obj, err := s.upload(ctx, patch.Image)
	if err != nil {
		return nil, err
	}
	var imageURL *string
	if obj != nil {
		imageURL = &obj.URL
	}

	patch.applyTo(user, hashed, imageURL)

	if err := s.users.Update(ctx, user); err != nil {
		s.discard(ctx, obj)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	metrics.RecordWritesTotal.WithLabelValues("user", "update").Inc()
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	metrics.RecordWritesTotal.WithLabelValues("user", "delete").Inc()
	return nil
}

// Authenticate returns the user owning email if password matches.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// EnsureUser creates a user with the given credentials unless the email is
// already registered. It is used to bootstrap the first administrator.
func (s *UserService) EnsureUser(ctx context.Context, name, email, password string) (bool, error) {
	existing, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("failed to find user: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	if _, err := s.Create(ctx, CreateUserInput{Name: name, Email: email, Password: password}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) checkEmail(ctx context.Context, email string, excludeID *uuid.UUID) error {
	taken, err := s.users.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return NewValidationError("email", "unique", "email has already been taken")
	}
	return nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", NewValidationError("password", "max", "password must not be longer than 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *UserService) upload(ctx context.Context, file *Upload) (*media.Object, error) {
	return uploadFile(ctx, s.uploader, s.logger, file)
}

func (s *UserService) discard(ctx context.Context, obj *media.Object) {
	discardUpload(ctx, s.uploader, s.logger, obj)
}

// uploadFile sends file to the media host once. A nil file is a no-op.
func uploadFile(ctx context.Context, uploader media.Uploader, logger *zap.Logger, file *Upload) (*media.Object, error) {
	if file == nil {
		return nil, nil
	}
	obj, err := uploader.Upload(ctx, file.Reader, file.Size, file.Filename)
	metrics.MediaUploadsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		logger.Error("media upload failed", zap.String("filename", file.Filename), zap.Error(err))
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	return obj, nil
}

// discardUpload removes an object whose record could not be saved. Failure is
// logged and otherwise ignored; the save error is what the caller reports.
func discardUpload(ctx context.Context, uploader media.Uploader, logger *zap.Logger, obj *media.Object) {
	if obj == nil {
		return
	}
	err := uploader.Delete(context.WithoutCancel(ctx), obj.Key)
	metrics.MediaCleanupsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		logger.Warn("failed to remove orphaned upload", zap.String("key", obj.Key), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
