package user

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"topcv/internal/events"
	"topcv/internal/messaging/kafka"
	"topcv/internal/shared/contextutil"
	usererrors "topcv/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) (UserResponse, error)
	ResendOtp(ctx context.Context, req ResendOtpRequest) error
	GetMe(ctx context.Context, userID string) (UserResponse, error)
	Update(ctx context.Context, userID string, req UpdateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context, page, size int) ([]UserResponse, int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	store  *RegistrationStore
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, store *RegistrationStore, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, store: store, outbox: outbox, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	s.logger.Debug("register requested", zap.String("email", req.Email))

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("register email check failed", zap.Error(err))
		return RegisterResponse{}, err
	}
	if exists {
		return RegisterResponse{}, usererrors.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("register hash password failed", zap.Error(err))
		return RegisterResponse{}, err
	}

	token, err := s.store.SavePending(ctx, pendingRegistration{
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Role:     req.Role,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		s.logger.Error("register save pending failed", zap.Error(err))
		return RegisterResponse{}, err
	}

	if err := s.issueOtp(ctx, req.Email, req.FullName); err != nil {
		return RegisterResponse{}, err
	}

	s.logger.Info("register pending created", zap.String("email", req.Email))
	return RegisterResponse{RegistrationToken: token, Email: req.Email}, nil
}

func (s *service) VerifyEmail(ctx context.Context, req VerifyEmailRequest) (UserResponse, error) {
	s.logger.Debug("verify email requested")

	reg, err := s.store.GetPending(ctx, req.RegistrationToken)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return UserResponse{}, usererrors.ErrRegistrationExpired
		}
		return UserResponse{}, err
	}

	// Compare before consuming so a mistyped code leaves the real one in
	// place; the GETDEL afterwards still picks exactly one winner between
	// concurrent correct attempts.
	code, err := s.store.PeekOtp(ctx, reg.Email)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return UserResponse{}, usererrors.ErrInvalidOtp
		}
		return UserResponse{}, err
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(req.Otp)) != 1 {
		return UserResponse{}, usererrors.ErrInvalidOtp
	}
	if _, err := s.store.ConsumeOtp(ctx, reg.Email); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return UserResponse{}, usererrors.ErrInvalidOtp
		}
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("verify email begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u := &User{
		ID:            uuid.New(),
		Email:         reg.Email,
		Password:      reg.Password,
		FullName:      reg.FullName,
		Phone:         reg.Phone,
		Address:       reg.Address,
		Role:          reg.Role,
		Active:        true,
		EmailVerified: true,
	}
	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("verify email persist user failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("verify email commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	_ = s.store.DeletePending(ctx, req.RegistrationToken)

	s.logger.Info("user verified and created",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
	)
	return mapToResponse(*u), nil
}

func (s *service) ResendOtp(ctx context.Context, req ResendOtpRequest) error {
	reg, err := s.store.GetPending(ctx, req.RegistrationToken)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return usererrors.ErrRegistrationExpired
		}
		return err
	}

	return s.issueOtp(ctx, reg.Email, reg.FullName)
}

// issueOtp stores a fresh code and queues the verification mail through the
// outbox so delivery survives a broker outage.
func (s *service) issueOtp(ctx context.Context, email, fullName string) error {
	code, err := NewOtpCode()
	if err != nil {
		return err
	}
	if err := s.store.SaveOtp(ctx, email, code); err != nil {
		s.logger.Error("save otp failed", zap.Error(err))
		return err
	}

	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.UserRegisteredEvent{
		EventType:  "user_registered",
		RequestID:  rid,
		Email:      email,
		FullName:   fullName,
		OtpCode:    code,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "user",
		AggregateID:   email,
		EventType:     event.EventType,
		Topic:         events.UserRegisteredTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue otp mail failed", zap.String("email", email), zap.Error(err))
		return err
	}

	return nil
}

func (s *service) GetMe(ctx context.Context, userID string) (UserResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, userID string, req UpdateUserRequest) (UserResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Avatar != "" {
		u.Avatar = req.Avatar
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	if req.Address != "" {
		u.Address = req.Address
	}

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", userID), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	s.logger.Info("update user success", zap.String("user_id", userID))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context, page, size int) ([]UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	users, total, err := s.repo.FindAll(ctx, (page-1)*size, size)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, total, nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		FullName:      u.FullName,
		Avatar:        u.Avatar,
		Phone:         u.Phone,
		Address:       u.Address,
		Role:          u.Role,
		Active:        u.Active,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	if isUniqueViolation(err, "uq_user_email") {
		return usererrors.ErrEmailAlreadyExists
	}
	return err
}
