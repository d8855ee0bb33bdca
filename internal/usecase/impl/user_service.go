package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	deliverycontext "clouddoctor/internal/delivery/context"
	"clouddoctor/internal/domain/entity"
	domainerrors "clouddoctor/internal/domain/errors"
	"clouddoctor/internal/domain/repository"
	"clouddoctor/internal/domain/service"
	"clouddoctor/internal/usecase"

	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	checklistRepo repository.ChecklistRepository
	hasher        service.PasswordHasher
	auditClient   service.AuditClient
	logger        *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	checklistRepo repository.ChecklistRepository,
	hasher service.PasswordHasher,
	auditClient service.AuditClient,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager:     txManager,
		userRepo:      userRepo,
		checklistRepo: checklistRepo,
		hasher:        hasher,
		auditClient:   auditClient,
		logger:        logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// findUser resolves the authenticated username to its account record.
func (srv *userService) findUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("authenticated user missing")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// GetMyInfo returns the caller's sanitized account record.
func (srv *userService) GetMyInfo(ctx context.Context, username string) (*usecase.UserInfo, error) {
	user, err := srv.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	return usecase.NewUserInfo(user), nil
}

// GetMyExternalID returns the caller's audit external id, prefix included.
func (srv *userService) GetMyExternalID(ctx context.Context, username string) (string, error) {
	user, err := srv.findUser(ctx, username)
	if err != nil {
		return "", err
	}

	return user.AuditExternalID(), nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one, atomically.
func (srv *userService) ChangePassword(ctx context.Context, username string, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Changing password", slog.String("username", username))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("authenticated user missing")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("current password mismatch")
		}

		newHash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
		}

		user.PasswordHash = newHash
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to persist new password")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to change password", slog.Any("error", err), slog.String("username", username))

		return err
	}

	srv.log(ctx).Info("Password changed", slog.String("username", username))

	return nil
}

// StartAudit forwards an audit request downstream once the supplied external
// id is confirmed to be the caller's own.
func (srv *userService) StartAudit(ctx context.Context, username string, input *usecase.StartAuditInput) (json.RawMessage, error) {
	user, err := srv.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.ExternalID != user.AuditExternalID() {
		srv.log(ctx).Info("Audit rejected: external id mismatch",
			slog.String("username", username),
			slog.String("supplied", input.ExternalID))

		return nil, domainerrors.ErrExternalIDMismatch.WrapMessage("external id does not belong to caller")
	}

	srv.log(ctx).Info("Starting audit",
		slog.String("username", username),
		slog.String("account_id", input.AccountID),
		slog.Int("checks", len(input.Checks)))

	resp, err := srv.auditClient.StartAudit(ctx, &service.AuditStartRequest{
		AccountID:  input.AccountID,
		RoleName:   input.RoleName,
		ExternalID: input.ExternalID,
		Checks:     input.Checks,
	})
	if err != nil {
		srv.log(ctx).Error("Audit engine call failed", slog.Any("error", err), slog.String("username", username))

		return nil, domainerrors.ErrAuditUpstream.WrapMessage(err.Error())
	}

	return resp, nil
}

// SaveChecklist records a completed checklist for the caller.
func (srv *userService) SaveChecklist(ctx context.Context, username string, input *usecase.SaveChecklistInput) (*entity.ChecklistResult, error) {
	notes, err := json.Marshal(input.Answers)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("checklist answers are not serializable")
	}

	var result *entity.ChecklistResult

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("authenticated user missing")
			}

			return errors.Wrap(err, "failed to find user")
		}

		now := time.Now()
		result = &entity.ChecklistResult{
			UserID:         user.ID,
			ResultName:     input.ResultName,
			Notes:          string(notes),
			IsCompleted:    true,
			CompletionDate: &now,
		}

		if err := repoFactory.ChecklistRepo().Create(ctx, result); err != nil {
			return errors.Wrap(err, "failed to create checklist result")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to save checklist", slog.Any("error", err), slog.String("username", username))

		return nil, err
	}

	srv.log(ctx).Info("Checklist saved", slog.String("username", username), slog.Int64("checklist_id", result.ID))

	return result, nil
}

// GetMyChecklists lists the caller's checklist results, newest first.
func (srv *userService) GetMyChecklists(ctx context.Context, username string) ([]*entity.ChecklistResult, error) {
	user, err := srv.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	results, err := srv.checklistRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list checklist results")
	}

	return results, nil
}

// GetChecklist returns a single checklist result, enforcing ownership.
func (srv *userService) GetChecklist(ctx context.Context, username string, id int64) (*entity.ChecklistResult, error) {
	user, err := srv.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	result, err := srv.checklistRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrChecklistNotFound) {
			return nil, domainerrors.ErrChecklistNotFound.WrapMessage("checklist not found")
		}

		return nil, errors.Wrap(err, "failed to find checklist result")
	}

	if result.UserID != user.ID {
		return nil, domainerrors.ErrForbidden.WrapMessage("checklist does not belong to caller")
	}

	return result, nil
}

// UpdateChecklist overwrites a checklist result owned by the caller.
func (srv *userService) UpdateChecklist(ctx context.Context, username string, id int64, input *usecase.SaveChecklistInput) (*entity.ChecklistResult, error) {
	notes, err := json.Marshal(input.Answers)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("checklist answers are not serializable")
	}

	var result *entity.ChecklistResult

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("authenticated user missing")
			}

			return errors.Wrap(err, "failed to find user")
		}

		checklistRepo := repoFactory.ChecklistRepo()

		result, err = checklistRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrChecklistNotFound) {
				return domainerrors.ErrChecklistNotFound.WrapMessage("checklist not found")
			}

			return errors.Wrap(err, "failed to find checklist result")
		}

		if result.UserID != user.ID {
			return domainerrors.ErrForbidden.WrapMessage("checklist does not belong to caller")
		}

		now := time.Now()
		result.ResultName = input.ResultName
		result.Notes = string(notes)
		result.IsCompleted = true
		result.CompletionDate = &now

		if err := checklistRepo.Update(ctx, result); err != nil {
			return errors.Wrap(err, "failed to update checklist result")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update checklist", slog.Any("error", err), slog.String("username", username), slog.Int64("checklist_id", id))

		return nil, err
	}

	srv.log(ctx).Info("Checklist updated", slog.String("username", username), slog.Int64("checklist_id", id))

	return result, nil
}
