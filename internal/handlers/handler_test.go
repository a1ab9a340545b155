package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/waste_approval_app/internal/core/ports/services"
	"github.com/SscSPs/waste_approval_app/internal/dto"
	"github.com/SscSPs/waste_approval_app/internal/handlers"
	"github.com/SscSPs/waste_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ApprovalLevelService ---
type MockApprovalLevelService struct {
	mock.Mock
}

func (m *MockApprovalLevelService) ListLevels(ctx context.Context, actor domain.Actor) ([]domain.ApprovalLevel, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalLevel), args.Error(1)
}
func (m *MockApprovalLevelService) CreateLevel(ctx context.Context, actor domain.Actor, req dto.CreateApprovalLevelRequest) (*domain.ApprovalLevel, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalLevel), args.Error(1)
}
func (m *MockApprovalLevelService) UpdateLevel(ctx context.Context, actor domain.Actor, levelID string, req dto.UpdateApprovalLevelRequest) (*domain.ApprovalLevel, error) {
	args := m.Called(ctx, actor, levelID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalLevel), args.Error(1)
}
func (m *MockApprovalLevelService) DeleteLevel(ctx context.Context, actor domain.Actor, levelID string) error {
	args := m.Called(ctx, actor, levelID)
	return args.Error(0)
}
func (m *MockApprovalLevelService) AssignApprover(ctx context.Context, actor domain.Actor, levelID string, req dto.AssignApproverRequest) (*domain.LevelApprover, error) {
	args := m.Called(ctx, actor, levelID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LevelApprover), args.Error(1)
}
func (m *MockApprovalLevelService) RemoveAssignment(ctx context.Context, actor domain.Actor, assignmentID string) error {
	args := m.Called(ctx, actor, assignmentID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.ApprovalLevelSvcFacade = (*MockApprovalLevelService)(nil)

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) SubmitEntry(ctx context.Context, actor domain.Actor, req dto.CreateWasteEntryRequest) (*domain.WasteEntry, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WasteEntry), args.Error(1)
}
func (m *MockWorkflowService) ListApprovableEntries(ctx context.Context, actor domain.Actor, status string) ([]domain.WasteEntryView, error) {
	args := m.Called(ctx, actor, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WasteEntryView), args.Error(1)
}
func (m *MockWorkflowService) GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.WasteEntryView, error) {
	args := m.Called(ctx, actor, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WasteEntryView), args.Error(1)
}
func (m *MockWorkflowService) Decide(ctx context.Context, actor domain.Actor, entryID string, req dto.DecisionRequest) (*domain.DecisionResult, error) {
	args := m.Called(ctx, actor, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DecisionResult), args.Error(1)
}
func (m *MockWorkflowService) SetFormApproval(ctx context.Context, actor domain.Actor, entryID string, approved bool) (*domain.WasteEntry, error) {
	args := m.Called(ctx, actor, entryID, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WasteEntry), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.WorkflowSvcFacade = (*MockWorkflowService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockLevels   *MockApprovalLevelService
	mockWorkflow *MockWorkflowService
	jwtSecret    string
}

var (
	adminActor    = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	approverActor = domain.Actor{UserID: "approver-1", Role: domain.RoleApprover}
	engineerActor = domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}
)

// generateTestToken creates a signed JWT carrying the actor's id and role.
func (suite *HandlerTestSuite) generateTestToken(actor domain.Actor) string {
	claims := middleware.Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "waste-test",
			Subject:   actor.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockLevels = new(MockApprovalLevelService)
	suite.mockWorkflow = new(MockWorkflowService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterApprovalLevelRoutes(v1, suite.mockLevels)
	handlers.RegisterWasteEntryRoutes(v1, suite.mockWorkflow)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockLevels.AssertExpectations(suite.T())
	suite.mockWorkflow.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, path string, actor *domain.Actor, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(*actor))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// --- Auth ---

func (suite *HandlerTestSuite) TestMissingTokenIsUnauthorized() {
	w := suite.do(http.MethodGet, "/api/v1/approval-levels", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestUnknownRoleIsUnauthorized() {
	w := suite.do(http.MethodGet, "/api/v1/approval-levels", &domain.Actor{UserID: "u", Role: "superuser"}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestWrongSecretIsUnauthorized() {
	claims := middleware.Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1"}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/approval-levels", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Approval levels ---

func (suite *HandlerTestSuite) TestListLevels_Success() {
	levels := []domain.ApprovalLevel{
		{LevelID: "l1", Name: "QA", LevelOrder: 1, ApprovalType: domain.ApprovalSequential, IsActive: true,
			Approvers: []domain.LevelApprover{{AssignmentID: "a1", LevelID: "l1", UserID: "approver-1"}}},
		{LevelID: "l2", Name: "Plant", LevelOrder: 2, ApprovalType: domain.ApprovalParallel, IsActive: true},
	}
	suite.mockLevels.On("ListLevels", mock.Anything, adminActor).Return(levels, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/approval-levels", &adminActor, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ApprovalLevelResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.Equal("l1", resp[0].LevelID)
	suite.Len(resp[0].Approvers, 1)
	suite.NotNil(resp[1].Approvers)
}

func (suite *HandlerTestSuite) TestListLevels_ForbiddenForNonAdmin() {
	suite.mockLevels.On("ListLevels", mock.Anything, approverActor).
		Return(nil, apperrors.NewForbiddenError("admin role required")).Once()

	w := suite.do(http.MethodGet, "/api/v1/approval-levels", &approverActor, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(suite.errorBody(w), "admin role required")
}

func (suite *HandlerTestSuite) TestCreateLevel_Success() {
	req := dto.CreateApprovalLevelRequest{Name: "QA", ApprovalType: "parallel"}
	created := &domain.ApprovalLevel{LevelID: "l1", Name: "QA", LevelOrder: 3, ApprovalType: domain.ApprovalParallel, IsActive: true}
	suite.mockLevels.On("CreateLevel", mock.Anything, adminActor, req).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/approval-levels", &adminActor, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ApprovalLevelResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.LevelOrder)
	suite.Equal(domain.ApprovalParallel, resp.ApprovalType)
}

func (suite *HandlerTestSuite) TestCreateLevel_MissingNameIsBadRequest() {
	w := suite.do(http.MethodPost, "/api/v1/approval-levels", &adminActor, map[string]string{"approvalType": "sequential"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateLevel_NotFound() {
	active := false
	req := dto.UpdateApprovalLevelRequest{IsActive: &active}
	suite.mockLevels.On("UpdateLevel", mock.Anything, adminActor, "missing", req).
		Return(nil, apperrors.NewNotFoundError("approval level missing not found")).Once()

	w := suite.do(http.MethodPut, "/api/v1/approval-levels/missing", &adminActor, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteLevel_NoContent() {
	suite.mockLevels.On("DeleteLevel", mock.Anything, adminActor, "l1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/approval-levels/l1", &adminActor, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestAssignApprover_Duplicate() {
	req := dto.AssignApproverRequest{UserID: "approver-1"}
	suite.mockLevels.On("AssignApprover", mock.Anything, adminActor, "l1", req).
		Return(nil, apperrors.NewDuplicateError("user approver-1 is already assigned")).Once()

	w := suite.do(http.MethodPost, "/api/v1/approval-levels/l1/approvers", &adminActor, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestAssignApprover_Created() {
	name := "Ada"
	req := dto.AssignApproverRequest{UserID: "approver-1"}
	suite.mockLevels.On("AssignApprover", mock.Anything, adminActor, "l1", req).
		Return(&domain.LevelApprover{AssignmentID: "a1", LevelID: "l1", UserID: "approver-1", Name: &name}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/approval-levels/l1/approvers", &adminActor, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.LevelApproverResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("a1", resp.AssignmentID)
	suite.Equal("Ada", *resp.Name)
	suite.Nil(resp.Email)
}

func (suite *HandlerTestSuite) TestRemoveAssignment_NoContent() {
	suite.mockLevels.On("RemoveAssignment", mock.Anything, adminActor, "a1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/approval-levels/assignments/a1", &adminActor, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

// --- Waste entries ---

func (suite *HandlerTestSuite) TestSubmitEntry_Created() {
	body := map[string]any{"lineID": "line-1", "productID": "p-1", "quantity": "12.5", "unit": "kg"}
	entry := &domain.WasteEntry{
		EntryID: "e1", LineID: "line-1", ProductID: "p-1", Quantity: decimal.RequireFromString("12.5"), Unit: "kg",
		CurrentApprovalLevel: 1, ApprovalStatus: domain.StatusPending,
	}
	suite.mockWorkflow.On("SubmitEntry", mock.Anything, engineerActor, mock.MatchedBy(func(req dto.CreateWasteEntryRequest) bool {
		return req.LineID == "line-1" && req.Quantity.Equal(decimal.RequireFromString("12.5"))
	})).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/waste-entries", &engineerActor, body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.WasteEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("e1", resp.EntryID)
	suite.Equal(domain.StatusPending, resp.ApprovalStatus)
	suite.Nil(resp.CanApprove)
}

func (suite *HandlerTestSuite) TestSubmitEntry_NonPositiveQuantityIsBadRequest() {
	for _, qty := range []string{"0", "-3"} {
		body := map[string]any{"lineID": "line-1", "productID": "p-1", "quantity": qty, "unit": "kg"}
		w := suite.do(http.MethodPost, "/api/v1/waste-entries", &engineerActor, body)
		suite.Equal(http.StatusBadRequest, w.Code, "quantity %s", qty)
	}
}

func (suite *HandlerTestSuite) TestSubmitEntry_MissingLineIsBadRequest() {
	body := map[string]any{"productID": "p-1", "quantity": "1", "unit": "kg"}
	w := suite.do(http.MethodPost, "/api/v1/waste-entries", &engineerActor, body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListApprovable_PassesStatusAndAnnotates() {
	views := []domain.WasteEntryView{
		{WasteEntry: domain.WasteEntry{EntryID: "e1", ApprovalStatus: domain.StatusPending, CurrentApprovalLevel: 1}, CanApprove: true},
		{WasteEntry: domain.WasteEntry{EntryID: "e2", ApprovalStatus: domain.StatusPending, CurrentApprovalLevel: 2}},
	}
	suite.mockWorkflow.On("ListApprovableEntries", mock.Anything, approverActor, "all").Return(views, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/waste-entries/approvals?status=all", &approverActor, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.WasteEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.True(*resp[0].CanApprove)
	suite.False(*resp[1].CanApprove)
}

func (suite *HandlerTestSuite) TestListApprovable_InvalidStatus() {
	suite.mockWorkflow.On("ListApprovableEntries", mock.Anything, adminActor, "archived").
		Return(nil, apperrors.NewValidationFailedError("invalid status filter archived")).Once()

	w := suite.do(http.MethodGet, "/api/v1/waste-entries/approvals?status=archived", &adminActor, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetEntry_NotFound() {
	suite.mockWorkflow.On("GetEntry", mock.Anything, adminActor, "nope").
		Return(nil, apperrors.NewNotFoundError("waste entry nope not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/waste-entries/nope", &adminActor, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDecide_Advances() {
	next := 2
	req := dto.DecisionRequest{Decision: "approved"}
	suite.mockWorkflow.On("Decide", mock.Anything, approverActor, "e1", req).Return(&domain.DecisionResult{
		EntryID: "e1", ApprovalStatus: domain.StatusPending, CurrentApprovalLevel: &next, Message: "advanced to level 2",
	}, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/waste-entries/e1/decision", &approverActor, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DecisionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusPending, resp.ApprovalStatus)
	suite.Equal(2, *resp.CurrentApprovalLevel)
}

func (suite *HandlerTestSuite) TestDecide_InvalidDecisionIsBadRequest() {
	w := suite.do(http.MethodPut, "/api/v1/waste-entries/e1/decision", &approverActor, map[string]string{"decision": "maybe"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDecide_ErrorMapping() {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"forbidden", apperrors.NewForbiddenError("not assigned to level 1"), http.StatusForbidden},
		{"conflict", apperrors.NewConflictError("entry e1 is already approved"), http.StatusConflict},
		{"not found", apperrors.NewNotFoundError("waste entry e1 not found"), http.StatusNotFound},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	req := dto.DecisionRequest{Decision: "rejected"}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockWorkflow.On("Decide", mock.Anything, approverActor, "e1", req).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPut, "/api/v1/waste-entries/e1/decision", &approverActor, req)

			suite.Equal(tc.want, w.Code)
			if tc.want == http.StatusInternalServerError {
				suite.Equal("Failed to record decision", suite.errorBody(w))
			}
		})
	}
}

func (suite *HandlerTestSuite) TestSetFormApproval_PreconditionFailed() {
	suite.mockWorkflow.On("SetFormApproval", mock.Anything, adminActor, "e1", true).
		Return(nil, apperrors.NewPreconditionFailedError("entry e1 is not app-approved")).Once()

	w := suite.do(http.MethodPut, "/api/v1/waste-entries/e1/form-approval", &adminActor, map[string]bool{"approved": true})

	suite.Equal(http.StatusPreconditionFailed, w.Code)
}

func (suite *HandlerTestSuite) TestSetFormApproval_ClearsFlag() {
	entry := &domain.WasteEntry{EntryID: "e1", ApprovalStatus: domain.StatusApproved, AppApproved: true, FormApproved: false}
	suite.mockWorkflow.On("SetFormApproval", mock.Anything, adminActor, "e1", false).Return(entry, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/waste-entries/e1/form-approval", &adminActor, map[string]bool{"approved": false})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.WasteEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.FormApproved)
	suite.True(resp.AppApproved)
}

func (suite *HandlerTestSuite) TestSetFormApproval_MissingFlagIsBadRequest() {
	w := suite.do(http.MethodPut, "/api/v1/waste-entries/e1/form-approval", &adminActor, map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)
}
