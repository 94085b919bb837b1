package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rise-platform/rise-edge/internal/ai"
	"github.com/rise-platform/rise-edge/internal/investor"
	"github.com/rise-platform/rise-edge/internal/startup"
)

const (
	replyTemperature = 0.7
	FallbackReply    = "I'm sorry, I couldn't generate a response."
)

var ErrInvalidMessages = errors.New("invalid request. 'messages' array with at least one message is required")

type StartupProvider interface {
	GetByUserID(userID uuid.UUID) (*startup.Startup, error)
}

type InvestorProvider interface {
	GetByUserID(userID uuid.UUID) (*investor.Investor, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, header string) (uuid.UUID, error)
}

type LogWriter interface {
	Create(item *Log) error
}

type Service struct {
	logs      LogWriter
	startups  StartupProvider
	investors InvestorProvider
	identity  IdentityResolver
	ai        ai.Completer
	validate  *validator.Validate
	now       func() time.Time
}

func NewService(logs LogWriter, sp StartupProvider, ip InvestorProvider, ir IdentityResolver, completer ai.Completer) *Service {
	return &Service{
		logs:      logs,
		startups:  sp,
		investors: ip,
		identity:  ir,
		ai:        completer,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// Reply answers the conversation, the profile of an authenticated user is added as context
func (s *Service) Reply(ctx context.Context, req ReplyRequest) (string, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidMessages, err)
	}

	ctx = context.WithoutCancel(ctx)

	userID, known := s.resolve(ctx, req.AuthHeader)

	userType, profile := UserTypeUnknown, ""
	if known {
		userType, profile = s.profileContext(userID)
	}

	reply, err := s.ai.Complete(ctx, ai.Request{
		System:      BuildSystemInstruction(profile, s.now().UTC()),
		Messages:    req.Messages,
		Temperature: replyTemperature,
	})
	if errors.Is(err, ai.ErrEmptyReply) {
		reply, err = "", nil
	}
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	if reply == "" {
		reply = FallbackReply
	}

	if known {
		s.writeLog(userID, userType, req.Messages[len(req.Messages)-1].Content, reply)
	}

	return reply, nil
}

func (s *Service) resolve(ctx context.Context, header string) (uuid.UUID, bool) {
	if header == "" {
		return uuid.Nil, false
	}

	userID, err := s.identity.Resolve(ctx, header)
	if err != nil {
		log.Warn().Err(err).Msg("proceeding without user context")
		return uuid.Nil, false
	}

	return userID, true
}

func (s *Service) profileContext(userID uuid.UUID) (UserType, string) {
	st, err := s.startups.GetByUserID(userID)
	switch {
	case err == nil:
		return UserTypeStartup, BuildStartupContext(st)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error().Err(err).Str("user_id", userID.String()).Msg("fetch startup context")
	}

	inv, err := s.investors.GetByUserID(userID)
	switch {
	case err == nil:
		return UserTypeInvestor, BuildInvestorContext(inv)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error().Err(err).Str("user_id", userID.String()).Msg("fetch investor context")
	}

	return UserTypeUnknown, ""
}

func (s *Service) writeLog(userID uuid.UUID, userType UserType, question, answer string) {
	err := s.logs.Create(&Log{
		CreatedAt:        s.now().UTC(),
		UserID:           userID,
		UserMessage:      question,
		AssistantMessage: answer,
		UserType:         userType,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("write assistant log")
	}
}
