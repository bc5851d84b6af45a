package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"quizdeck/internal/domain/repository"
	"quizdeck/internal/domain/service"
	mockRepo "quizdeck/internal/mocks/repository"
	mockSvc "quizdeck/internal/mocks/service"
	"quizdeck/internal/usecase"
)

// passthroughTxManager runs the transactional callback against a fixed
// factory, so tests exercise the same code path as a real transaction.
type passthroughTxManager struct {
	factory repository.RepositoryFactory
}

func (m *passthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// singleRepoFactory hands out the same repositories for every call.
type singleRepoFactory struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
}

func (f *singleRepoFactory) UserRepo() repository.UserRepository {
	return f.userRepo
}

func (f *singleRepoFactory) QuestionRepo() repository.QuestionRepository {
	return f.questionRepo
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sessionServiceFixture struct {
	userRepo *mockRepo.MockUserRepository
	hasher   *mockSvc.MockPasswordHasher
	tokenSvc *mockSvc.MockTokenService
	mailer   *mockSvc.MockMailer
	service  usecase.SessionUsecase
}

func newSessionServiceFixture(t *testing.T, resetBaseURL string) *sessionServiceFixture {
	t.Helper()

	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	mailer := mockSvc.NewMockMailer(t)

	txManager := &passthroughTxManager{factory: &singleRepoFactory{userRepo: userRepo}}

	svc := &sessionService{
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenSvc,
		mailer:       mailer,
		resetBaseURL: resetBaseURL,
		logger:       discardLogger(),
	}

	return &sessionServiceFixture{
		userRepo: userRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
		mailer:   mailer,
		service:  svc,
	}
}

var _ service.TokenService = (*mockSvc.MockTokenService)(nil)
var _ service.PasswordHasher = (*mockSvc.MockPasswordHasher)(nil)
var _ service.Mailer = (*mockSvc.MockMailer)(nil)
var _ repository.UserRepository = (*mockRepo.MockUserRepository)(nil)
var _ repository.QuestionRepository = (*mockRepo.MockQuestionRepository)(nil)
var _ repository.TransactionManager = (*mockRepo.MockTransactionManager)(nil)
var _ repository.RepositoryFactory = (*mockRepo.MockRepositoryFactory)(nil)
