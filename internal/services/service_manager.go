package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/school-portal/portal-service/internal/auth"
	"github.com/school-portal/portal-service/internal/events"
	"github.com/school-portal/portal-service/internal/repositories"
	"github.com/school-portal/portal-service/internal/validator"
)

// ServiceManagerConfig holds cross-service configuration resolved at startup.
type ServiceManagerConfig struct {
	// Bootstrap admin; empty values disable seeding.
	SeedAdminEmail    string
	SeedAdminPassword string
}

// serviceManager implements ServiceManager.
type serviceManager struct {
	repo      repositories.Repository
	tokens    *auth.TokenIssuer
	passwords *auth.PasswordHasher
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	authService       AuthService
	userService       UserService
	classService      ClassService
	assignmentService AssignmentService
	gradeService      GradeService
	exportService     ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(
	repo repositories.Repository,
	tokens *auth.TokenIssuer,
	passwords *auth.PasswordHasher,
	publisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
	config ServiceManagerConfig,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		tokens:    tokens,
		passwords: passwords,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// Initialize constructs every service and runs the seed-admin bootstrap.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.authService = NewAuthService(sm.repo, sm.tokens, sm.passwords, sm.publisher, sm.logger, sm.validator)
	sm.userService = NewUserService(sm.repo, sm.passwords, sm.publisher, sm.logger, sm.validator)
	sm.classService = NewClassService(sm.repo, sm.logger, sm.validator)
	sm.assignmentService = NewAssignmentService(sm.repo, sm.logger, sm.validator)
	sm.gradeService = NewGradeService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.exportService = NewExportService(sm.repo, sm.logger)

	if err := sm.userService.EnsureSeedAdmin(ctx, sm.config.SeedAdminEmail, sm.config.SeedAdminPassword); err != nil {
		return fmt.Errorf("seed admin bootstrap failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Services initialized")
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.userService
}

func (sm *serviceManager) Class() ClassService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.classService
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.assignmentService
}

func (sm *serviceManager) Grade() GradeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.gradeService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.exportService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("services not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("services shut down")
	}
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true

	if err := sm.publisher.Close(); err != nil {
		sm.logger.Error("Failed to close event publisher", "error", err)
	}

	sm.logger.Info("Services shut down")
	return nil
}

var _ ServiceManager = (*serviceManager)(nil)
