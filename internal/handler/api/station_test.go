//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

type StationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockStationCommands
	mockQueries  *queriesmock.MockStationQueries
	handler      *api.StationHandler
	actor        shared.Actor
}

func (s *StationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockStationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockStationQueries(s.mockCtrl)
	s.handler = api.NewStationHandler(s.mockCommands, s.mockQueries)

	s.actor = shared.Actor{UserID: uuid.New(), Username: "ops", Role: user.RoleOperator}

	authMiddleware := func(c *gin.Context) {
		c.Set("actor", s.actor)
		c.Next()
	}

	s.router.POST("/chargingstation/create", authMiddleware, s.handler.Create)
	s.router.GET("/chargingstation/all", authMiddleware, s.handler.List)
	s.router.GET("/chargingstation/:id", authMiddleware, s.handler.Get)
	s.router.DELETE("/chargingstation/delete/:id", authMiddleware, s.handler.Delete)
}

func (s *StationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *StationHandlerTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *StationHandlerTestSuite) TestDelete() {
	s.Run("依存ありのプレビューは409とカウントを返す", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Delete(gomock.Any(), s.actor, id, false).
			Return(&commands.DeleteStationResult{
				Deleted: false,
				Preview: shared.DependencyPreview{BookingsCount: 3, SlotsCount: 12},
			}, commands.ErrStationHasDependencies)

		rec := s.request(http.MethodDelete, "/chargingstation/delete/"+id.String(), nil)
		s.Equal(http.StatusConflict, rec.Code)

		var got struct {
			Preview shared.DependencyPreview `json:"preview"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal(int64(3), got.Preview.BookingsCount)
		s.Equal(int64(12), got.Preview.SlotsCount)
	})

	s.Run("confirm=trueで削除が実行される", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Delete(gomock.Any(), s.actor, id, true).
			Return(&commands.DeleteStationResult{
				Deleted: true,
				Preview: shared.DependencyPreview{BookingsCount: 3, SlotsCount: 12},
			}, nil)

		rec := s.request(http.MethodDelete, "/chargingstation/delete/"+id.String()+"?confirm=true", nil)
		s.Equal(http.StatusOK, rec.Code)

		var got struct {
			Deleted bool `json:"deleted"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.True(got.Deleted)
	})

	s.Run("依存なしのプレビューは200で何も消さない", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Delete(gomock.Any(), s.actor, id, false).
			Return(&commands.DeleteStationResult{Deleted: false}, nil)

		rec := s.request(http.MethodDelete, "/chargingstation/delete/"+id.String(), nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("権限不足で403", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			Delete(gomock.Any(), s.actor, id, false).
			Return(nil, commands.ErrForbidden)

		rec := s.request(http.MethodDelete, "/chargingstation/delete/"+id.String(), nil)
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *StationHandlerTestSuite) TestList() {
	s.Run("オペレーターは非公開も含む全件", func() {
		s.mockQueries.EXPECT().
			ListAll(gomock.Any(), false).
			Return([]*queries.StationView{}, nil)

		rec := s.request(http.MethodGet, "/chargingstation/all", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("一般ユーザーは公開ステーションのみ", func() {
		s.actor.Role = user.RoleUser
		defer func() { s.actor.Role = user.RoleOperator }()

		s.mockQueries.EXPECT().
			ListAll(gomock.Any(), true).
			Return([]*queries.StationView{}, nil)

		rec := s.request(http.MethodGet, "/chargingstation/all", nil)
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *StationHandlerTestSuite) TestCreate() {
	s.Run("作成成功で201", func() {
		view := &queries.StationView{ID: uuid.New(), Name: "新宿ステーション"}
		s.mockCommands.EXPECT().
			Create(gomock.Any(), s.actor, gomock.Any()).
			Return(view, nil)

		rec := s.request(http.MethodPost, "/chargingstation/create", gin.H{
			"name":           "新宿ステーション",
			"address":        "新宿区1-1",
			"connectorTypes": []string{"type2"},
			"connectorCount": 2,
		})

		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("必須項目欠落で400", func() {
		rec := s.request(http.MethodPost, "/chargingstation/create", gin.H{"name": "欠落"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func TestStationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(StationHandlerTestSuite))
}
