//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"evcharge-booking/internal/domain/user"
	"evcharge-booking/internal/handler/api"
	"evcharge-booking/internal/usecase/commands"
	"evcharge-booking/internal/usecase/queries"
	"evcharge-booking/internal/usecase/shared"
	commandsmock "evcharge-booking/tests/mock/commands"
	queriesmock "evcharge-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	actor        shared.Actor
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.actor = shared.Actor{UserID: uuid.New(), Username: "taro", Role: user.RoleUser}

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("actor", s.actor)
		c.Next()
	}

	s.router.POST("/booking/create", authMiddleware, s.handler.Create)
	s.router.POST("/booking/cancel/:id", authMiddleware, s.handler.Cancel)
	s.router.PUT("/booking/update/:id", authMiddleware, s.handler.Update)
	s.router.GET("/booking/all", authMiddleware, s.handler.List)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *BookingHandlerTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *BookingHandlerTestSuite) sampleView() *queries.BookingView {
	start := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	slotID := uuid.New()
	end := start.Add(time.Hour)
	return &queries.BookingView{
		ID:          uuid.New(),
		UserID:      s.actor.UserID,
		StationID:   uuid.New(),
		StationName: "テストステーション",
		SlotID:      &slotID,
		StartTime:   start,
		EndTime:     &end,
		Status:      "pending",
	}
}

func (s *BookingHandlerTestSuite) TestCreate() {
	s.Run("予約成功で201", func() {
		view := s.sampleView()
		s.mockCommands.EXPECT().
			Create(gomock.Any(), s.actor, view.StationID, *view.SlotID).
			Return(view, nil)

		rec := s.request(http.MethodPost, "/booking/create", gin.H{
			"stationId": view.StationID,
			"slotId":    view.SlotID,
		})

		s.Equal(http.StatusCreated, rec.Code)

		var got map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal(view.ID.String(), got["id"])
		s.Equal("pending", got["status"])
	})

	s.Run("スロット競合で409", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrSlotAlreadyBooked)

		rec := s.request(http.MethodPost, "/booking/create", gin.H{
			"stationId": uuid.New(),
			"slotId":    uuid.New(),
		})

		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("非アクティブステーションで409", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrStationInactive)

		rec := s.request(http.MethodPost, "/booking/create", gin.H{
			"stationId": uuid.New(),
			"slotId":    uuid.New(),
		})

		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("ボディ不正で400", func() {
		rec := s.request(http.MethodPost, "/booking/create", gin.H{"stationId": "not-a-uuid"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("未認証で401", func() {
		req := httptest.NewRequest(http.MethodPost, "/booking/create", bytes.NewBufferString("{}"))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	s.Run("キャンセル成功で200", func() {
		view := s.sampleView()
		view.Status = "canceled"
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), s.actor, view.ID).
			Return(view, nil)

		rec := s.request(http.MethodPost, "/booking/cancel/"+view.ID.String(), nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("ウィンドウ超過で409", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), s.actor, id).
			Return(nil, commands.ErrCancelWindowClosed)

		rec := s.request(http.MethodPost, "/booking/cancel/"+id.String(), nil)
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("他人の予約で403", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), s.actor, id).
			Return(nil, commands.ErrForbidden)

		rec := s.request(http.MethodPost, "/booking/cancel/"+id.String(), nil)
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("ID形式不正で400", func() {
		rec := s.request(http.MethodPost, "/booking/cancel/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestUpdate() {
	s.Run("approve成功で200", func() {
		view := s.sampleView()
		view.Status = "approved"
		s.mockCommands.EXPECT().
			Approve(gomock.Any(), s.actor, view.ID).
			Return(view, nil)

		rec := s.request(http.MethodPut, "/booking/update/"+view.ID.String(), gin.H{"action": "approve"})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("reopen時のスロット競合で409", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Reopen(gomock.Any(), s.actor, id).
			Return(nil, commands.ErrSlotAlreadyBooked)

		rec := s.request(http.MethodPut, "/booking/update/"+id.String(), gin.H{"action": "reopen"})
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("不正な遷移で409", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Complete(gomock.Any(), s.actor, id).
			Return(nil, commands.ErrInvalidTransition)

		rec := s.request(http.MethodPut, "/booking/update/"+id.String(), gin.H{"action": "complete"})
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("未知のactionで400", func() {
		rec := s.request(http.MethodPut, "/booking/update/"+uuid.New().String(), gin.H{"action": "teleport"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("一般ユーザーは自分の予約のみ", func() {
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.actor.UserID).
			Return([]*queries.BookingView{s.sampleView()}, nil)

		rec := s.request(http.MethodGet, "/booking/all", nil)
		s.Equal(http.StatusOK, rec.Code)

		var got []map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Len(got, 1)
	})

	s.Run("オペレーターは全件取得できる", func() {
		s.actor.Role = user.RoleOperator
		defer func() { s.actor.Role = user.RoleUser }()

		s.mockQueries.EXPECT().
			ListAll(gomock.Any()).
			Return([]*queries.BookingView{}, nil)

		rec := s.request(http.MethodGet, "/booking/all", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("オペレーターのuserIdフィルタ", func() {
		s.actor.Role = user.RoleOperator
		defer func() { s.actor.Role = user.RoleUser }()

		target := uuid.New()
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), target).
			Return([]*queries.BookingView{}, nil)

		rec := s.request(http.MethodGet, "/booking/all?userId="+target.String(), nil)
		s.Equal(http.StatusOK, rec.Code)
	})
}

func TestBookingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}
