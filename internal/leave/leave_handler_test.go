package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-leavedesk/internal/leave"
	leaveerrors "go-leavedesk/internal/leave/errors"
)

type fakeLeaveService struct {
	checkEligibilityFn func(ctx context.Context, personnelID, leaveTypeID string) (leave.EligibilityResponse, error)
	createFn           func(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error)
	getHistoryFn       func(ctx context.Context, personnelID, leaveTypeID string) ([]leave.LeaveHistoryResponse, error)
	approveFn          func(ctx context.Context, id, deciderID string) (leave.LeaveRequestResponse, error)
	rejectFn           func(ctx context.Context, id, deciderID, reason string) (leave.LeaveRequestResponse, error)
	buildCalendarFn    func(ctx context.Context, from, to time.Time) (string, error)
}

func (f *fakeLeaveService) CheckEligibility(ctx context.Context, personnelID, leaveTypeID string) (leave.EligibilityResponse, error) {
	return f.checkEligibilityFn(ctx, personnelID, leaveTypeID)
}

func (f *fakeLeaveService) Create(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeLeaveService) GetHistory(ctx context.Context, personnelID, leaveTypeID string) ([]leave.LeaveHistoryResponse, error) {
	return f.getHistoryFn(ctx, personnelID, leaveTypeID)
}

func (f *fakeLeaveService) Approve(ctx context.Context, id, deciderID string) (leave.LeaveRequestResponse, error) {
	return f.approveFn(ctx, id, deciderID)
}

func (f *fakeLeaveService) Reject(ctx context.Context, id, deciderID, reason string) (leave.LeaveRequestResponse, error) {
	return f.rejectFn(ctx, id, deciderID, reason)
}

func (f *fakeLeaveService) BuildCalendar(ctx context.Context, from, to time.Time) (string, error) {
	return f.buildCalendarFn(ctx, from, to)
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newLeaveRouter(svc leave.Service, role, personnelID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.NewString())
		c.Set("role", role)
		c.Set("personnel_id", personnelID)
	})

	handler := leave.NewHandler(svc)
	r.POST("/leaves", handler.Create)
	r.GET("/leaves/eligibility", handler.CheckEligibility)
	r.GET("/leaves/history/:personnelID", handler.GetHistory)
	r.POST("/leaves/:id/approve", handler.Approve)
	r.POST("/leaves/:id/reject", handler.Reject)
	return r
}

func TestLeaveHandler_Create(t *testing.T) {
	pid := uuid.NewString()
	svc := &fakeLeaveService{
		createFn: func(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{
				ID:          uuid.NewString(),
				PersonnelID: req.PersonnelID,
				LeaveTypeID: req.LeaveTypeID,
				StartDate:   req.StartDate,
				EndDate:     "2024-05-03",
				Status:      leave.StatusPending,
			}, nil
		},
	}

	r := newLeaveRouter(svc, "employee", pid)
	body, _ := json.Marshal(gin.H{
		"personnel_id":  pid,
		"leave_type_id": uuid.NewString(),
		"start_date":    "2024-05-01",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Ok)

	var resp leave.LeaveRequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, "2024-05-03", resp.EndDate)
}

func TestLeaveHandler_Create_ForbiddenForOtherPersonnel(t *testing.T) {
	svc := &fakeLeaveService{
		createFn: func(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			t.Fatal("service must not be called")
			return leave.LeaveRequestResponse{}, nil
		},
	}

	r := newLeaveRouter(svc, "employee", uuid.NewString())
	body, _ := json.Marshal(gin.H{
		"personnel_id":  uuid.NewString(),
		"leave_type_id": uuid.NewString(),
		"start_date":    "2024-05-01",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Ok)
}

func TestLeaveHandler_Create_ValidationError(t *testing.T) {
	r := newLeaveRouter(&fakeLeaveService{}, "employee", uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewReader([]byte(`{"start_date":"2024-05-01"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestLeaveHandler_Create_GenderMismatchStatus(t *testing.T) {
	pid := uuid.NewString()
	svc := &fakeLeaveService{
		createFn: func(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, leaveerrors.NewGenderMismatch("male")
		},
	}

	r := newLeaveRouter(svc, "employee", pid)
	body, _ := json.Marshal(gin.H{
		"personnel_id":  pid,
		"leave_type_id": uuid.NewString(),
		"start_date":    "2024-05-01",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, leaveerrors.CodeGenderMismatch, env.Error.Code)
	assert.Contains(t, env.Error.Message, "male")
}

func TestLeaveHandler_CheckEligibility_InvalidLeaveTypeStatus(t *testing.T) {
	pid := uuid.NewString()
	svc := &fakeLeaveService{
		checkEligibilityFn: func(ctx context.Context, personnelID, leaveTypeID string) (leave.EligibilityResponse, error) {
			return leave.EligibilityResponse{}, leaveerrors.ErrInvalidLeaveType
		},
	}

	r := newLeaveRouter(svc, "employee", pid)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leaves/eligibility?personnel_id="+pid+"&leave_type_id="+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
}

func TestLeaveHandler_GetHistory_AdminCanReadAnyone(t *testing.T) {
	target := uuid.NewString()
	typeID := uuid.NewString()
	svc := &fakeLeaveService{
		getHistoryFn: func(ctx context.Context, personnelID, leaveTypeID string) ([]leave.LeaveHistoryResponse, error) {
			assert.Equal(t, target, personnelID)
			assert.Equal(t, typeID, leaveTypeID)
			return []leave.LeaveHistoryResponse{
				{ID: uuid.NewString(), LeaveTypeName: "Marriage Leave", MaxDays: 3, StartDate: "2024-06-10", EndDate: "2024-06-12", Status: leave.StatusApproved},
			}, nil
		},
	}

	r := newLeaveRouter(svc, "admin", "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leaves/history/"+target+"?leave_type_id="+typeID, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Ok)

	var resp []leave.LeaveHistoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Marriage Leave", resp[0].LeaveTypeName)
}

func TestLeaveHandler_GetHistory_EmployeeCannotReadOthers(t *testing.T) {
	svc := &fakeLeaveService{
		getHistoryFn: func(ctx context.Context, personnelID, leaveTypeID string) ([]leave.LeaveHistoryResponse, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	r := newLeaveRouter(svc, "employee", uuid.NewString())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leaves/history/"+uuid.NewString()+"?leave_type_id="+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLeaveHandler_Reject_RequiresReasonBody(t *testing.T) {
	r := newLeaveRouter(&fakeLeaveService{}, "admin", "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves/"+uuid.NewString()+"/reject", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeaveHandler_Approve_NotFoundStatus(t *testing.T) {
	svc := &fakeLeaveService{
		approveFn: func(ctx context.Context, id, deciderID string) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		},
	}

	r := newLeaveRouter(svc, "admin", "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves/"+uuid.NewString()+"/approve", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
