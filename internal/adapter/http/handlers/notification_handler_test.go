package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/http/handlers/mocks"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func notificationRouter(h *NotificationHandler) *gin.Engine {
	r := gin.New()
	r.GET("/v1/notifications/:user_id", h.ListByUser)
	return r
}

func TestNotificationHandler_ListByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockINotificationUseCase(ctrl)
		r := notificationRouter(NewNotificationHandler(uc))

		now := time.Now().UTC()
		uc.EXPECT().ListByUserID(gomock.Any(), "user-1").Return([]entities.Notification{
			{ID: "n-1", UserID: "user-1", Type: entities.NotificationTypePaymentConfirmed, Status: entities.NotificationStatusSent, CreatedAt: now},
			{ID: "n-2", UserID: "user-1", Type: entities.NotificationTypePaymentFailed, Status: entities.NotificationStatusPending, CreatedAt: now},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/notifications/user-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["count"] != float64(2) {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("empty feed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockINotificationUseCase(ctrl)
		r := notificationRouter(NewNotificationHandler(uc))

		uc.EXPECT().ListByUserID(gomock.Any(), "user-2").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/notifications/user-2", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["count"] != float64(0) {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("invalid user id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockINotificationUseCase(ctrl)
		r := notificationRouter(NewNotificationHandler(uc))

		uc.EXPECT().ListByUserID(gomock.Any(), gomock.Any()).Return(nil, usecase.ErrInvalidUserID)

		req := httptest.NewRequest(http.MethodGet, "/v1/notifications/%20", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockINotificationUseCase(ctrl)
		r := notificationRouter(NewNotificationHandler(uc))

		uc.EXPECT().ListByUserID(gomock.Any(), "user-3").Return(nil, errors.New("dynamo down"))

		req := httptest.NewRequest(http.MethodGet, "/v1/notifications/user-3", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
