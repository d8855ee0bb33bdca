package impl

import (
	"context"
	"encoding/json"
	"testing"

	"clouddoctor/config"
	"clouddoctor/internal/domain/entity"
	domainerrors "clouddoctor/internal/domain/errors"
	"clouddoctor/internal/infra/auth"
	"clouddoctor/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	svc           usecase.UserUsecase
	userRepo      *fakeUserRepo
	checklistRepo *fakeChecklistRepo
	auditClient   *fakeAuditClient
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	hasher := auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})
	passwordHash, err := hasher.Hash("hunter2")
	require.NoError(t, err)

	userRepo := newFakeUserRepo(
		&entity.User{
			ID:           1,
			Username:     "alice",
			PasswordHash: passwordHash,
			Role:         entity.RoleUser,
			FullName:     "Alice Example",
			ExternalID:   "abc-123",
		},
		&entity.User{
			ID:           2,
			Username:     "bob",
			PasswordHash: passwordHash,
			Role:         entity.RoleUser,
			FullName:     "Bob Example",
			ExternalID:   "def-456",
		},
	)
	checklistRepo := newFakeChecklistRepo()
	auditClient := &fakeAuditClient{response: json.RawMessage(`{"jobId":"42"}`)}
	txManager := &fakeTxManager{userRepo: userRepo, checklistRepo: checklistRepo}

	return &userFixture{
		svc:           NewUserService(txManager, userRepo, checklistRepo, hasher, auditClient, newDiscardLogger()),
		userRepo:      userRepo,
		checklistRepo: checklistRepo,
		auditClient:   auditClient,
	}
}

func TestUserService_GetMyInfo(t *testing.T) {
	fixture := newUserFixture(t)

	info, err := fixture.svc.GetMyInfo(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.ID)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "USER", info.Role)
	assert.Equal(t, "Alice Example", info.FullName)
}

func TestUserService_GetMyInfo_UnknownUser(t *testing.T) {
	fixture := newUserFixture(t)

	_, err := fixture.svc.GetMyInfo(context.Background(), "mallory")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_GetMyExternalID_CarriesPrefix(t *testing.T) {
	fixture := newUserFixture(t)

	externalID, err := fixture.svc.GetMyExternalID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "clouddoctor-abc-123", externalID)
}

func TestUserService_ChangePassword(t *testing.T) {
	fixture := newUserFixture(t)
	ctx := context.Background()

	err := fixture.svc.ChangePassword(ctx, "alice", &usecase.ChangePasswordInput{
		CurrentPassword: "hunter2",
		NewPassword:     "correct-horse-battery",
	})
	require.NoError(t, err)

	hasher := auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})
	user, err := fixture.userRepo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, hasher.Check("correct-horse-battery", user.PasswordHash))
	assert.False(t, hasher.Check("hunter2", user.PasswordHash))
}

func TestUserService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	fixture := newUserFixture(t)

	err := fixture.svc.ChangePassword(context.Background(), "alice", &usecase.ChangePasswordInput{
		CurrentPassword: "not-hunter2",
		NewPassword:     "whatever",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_StartAudit(t *testing.T) {
	fixture := newUserFixture(t)

	result, err := fixture.svc.StartAudit(context.Background(), "alice", &usecase.StartAuditInput{
		AccountID:  "123456789012",
		RoleName:   "audit-role",
		ExternalID: "clouddoctor-abc-123",
		Checks:     []string{"s3", "iam"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"jobId":"42"}`, string(result))

	require.NotNil(t, fixture.auditClient.lastReq)
	assert.Equal(t, "123456789012", fixture.auditClient.lastReq.AccountID)
	assert.Equal(t, "clouddoctor-abc-123", fixture.auditClient.lastReq.ExternalID)
}

func TestUserService_StartAudit_ExternalIDMismatch(t *testing.T) {
	fixture := newUserFixture(t)

	// Bob's external id on Alice's session must be refused before any
	// downstream call happens.
	_, err := fixture.svc.StartAudit(context.Background(), "alice", &usecase.StartAuditInput{
		AccountID:  "123456789012",
		RoleName:   "audit-role",
		ExternalID: "clouddoctor-def-456",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrExternalIDMismatch))
	assert.Nil(t, fixture.auditClient.lastReq)
}

func TestUserService_StartAudit_UpstreamFailure(t *testing.T) {
	fixture := newUserFixture(t)
	fixture.auditClient.err = errors.New("connection refused")

	_, err := fixture.svc.StartAudit(context.Background(), "alice", &usecase.StartAuditInput{
		AccountID:  "123456789012",
		RoleName:   "audit-role",
		ExternalID: "clouddoctor-abc-123",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAuditUpstream))
}

func TestUserService_SaveAndListChecklists(t *testing.T) {
	fixture := newUserFixture(t)
	ctx := context.Background()

	saved, err := fixture.svc.SaveChecklist(ctx, "alice", &usecase.SaveChecklistInput{
		ResultName: "CIS benchmark",
		Answers:    map[string]any{"mfa": true, "rotation": "90d"},
	})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, int64(1), saved.UserID)
	assert.True(t, saved.IsCompleted)
	require.NotNil(t, saved.CompletionDate)

	var answers map[string]any
	require.NoError(t, json.Unmarshal([]byte(saved.Notes), &answers))
	assert.Equal(t, true, answers["mfa"])

	results, err := fixture.svc.GetMyChecklists(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, saved.ID, results[0].ID)

	// Bob sees none of Alice's results.
	results, err = fixture.svc.GetMyChecklists(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUserService_GetChecklist_EnforcesOwnership(t *testing.T) {
	fixture := newUserFixture(t)
	ctx := context.Background()

	saved, err := fixture.svc.SaveChecklist(ctx, "alice", &usecase.SaveChecklistInput{
		ResultName: "CIS benchmark",
	})
	require.NoError(t, err)

	_, err = fixture.svc.GetChecklist(ctx, "bob", saved.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	result, err := fixture.svc.GetChecklist(ctx, "alice", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, result.ID)
}

func TestUserService_GetChecklist_NotFound(t *testing.T) {
	fixture := newUserFixture(t)

	_, err := fixture.svc.GetChecklist(context.Background(), "alice", 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrChecklistNotFound))
}

func TestUserService_UpdateChecklist(t *testing.T) {
	fixture := newUserFixture(t)
	ctx := context.Background()

	saved, err := fixture.svc.SaveChecklist(ctx, "alice", &usecase.SaveChecklistInput{
		ResultName: "CIS benchmark",
		Answers:    map[string]any{"mfa": false},
	})
	require.NoError(t, err)

	updated, err := fixture.svc.UpdateChecklist(ctx, "alice", saved.ID, &usecase.SaveChecklistInput{
		ResultName: "CIS benchmark v2",
		Answers:    map[string]any{"mfa": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "CIS benchmark v2", updated.ResultName)

	result, err := fixture.svc.GetChecklist(ctx, "alice", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "CIS benchmark v2", result.ResultName)
}

func TestUserService_UpdateChecklist_EnforcesOwnership(t *testing.T) {
	fixture := newUserFixture(t)
	ctx := context.Background()

	saved, err := fixture.svc.SaveChecklist(ctx, "alice", &usecase.SaveChecklistInput{
		ResultName: "CIS benchmark",
	})
	require.NoError(t, err)

	_, err = fixture.svc.UpdateChecklist(ctx, "bob", saved.ID, &usecase.SaveChecklistInput{
		ResultName: "hijacked",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
