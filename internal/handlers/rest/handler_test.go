package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/KirkDiggler/duelhall/internal/services/duel"
	"github.com/KirkDiggler/duelhall/internal/services/duel/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-secret"

type HandlerTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockService *mocks.MockService
	router      *mux.Router

	testDuelID       string
	testChallengerID string
	testOpponentID   string
	testUserID       string
}

func (s *HandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.mockCtrl)

	h, err := New(&Config{
		DuelService: s.mockService,
		JWTSecret:   testSecret,
	})
	s.Require().NoError(err)
	s.router = h.Router()

	s.testDuelID = "5b0e7c1e-7f43-4a39-9a3c-0d0cbf0d7a10"
	s.testChallengerID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	s.testOpponentID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	s.testUserID = "user-1"
}

func (s *HandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) token(subject, role string) string {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	s.Require().NoError(err)
	return signed
}

func (s *HandlerTestSuite) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decode(rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *HandlerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("ok", s.decode(rec)["status"])
}

func (s *HandlerTestSuite) TestMissingTokenIsUnauthorized() {
	rec := s.do(http.MethodPost, "/api/challenge", `{}`, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("UNAUTHORIZED", s.decode(rec)["error"])
}

func (s *HandlerTestSuite) TestWrongSecretIsUnauthorized() {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u"}).
		SignedString([]byte("other-secret"))
	s.Require().NoError(err)

	rec := s.do(http.MethodPost, "/api/challenge", `{}`, signed)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerTestSuite) TestExpiredTokenIsUnauthorized() {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   s.testUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/duels/"+s.testDuelID, "", signed)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerTestSuite) TestChallenge() {
	s.mockService.EXPECT().
		Challenge(gomock.Any(), &duel.ChallengeInput{
			Caller:                duel.Caller{UserID: s.testUserID, Role: "User"},
			ChallengerCharacterID: s.testChallengerID,
			OpponentCharacterID:   s.testOpponentID,
		}).
		Return(&duel.ChallengeOutput{DuelID: s.testDuelID}, nil)

	body := `{"challengerCharacterId":"` + s.testChallengerID + `","opponentCharacterId":"` + s.testOpponentID + `"}`
	rec := s.do(http.MethodPost, "/api/challenge", body, s.token(s.testUserID, "User"))

	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(s.testDuelID, s.decode(rec)["duelId"])
}

func (s *HandlerTestSuite) TestChallengeValidation() {
	rec := s.do(http.MethodPost, "/api/challenge", `{"challengerCharacterId":"nope"}`, s.token(s.testUserID, ""))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", s.decode(rec)["error"])

	rec = s.do(http.MethodPost, "/api/challenge", `{not json`, s.token(s.testUserID, ""))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestChallengeForbidden() {
	s.mockService.EXPECT().Challenge(gomock.Any(), gomock.Any()).Return(nil, duel.ErrForbidden)

	body := `{"challengerCharacterId":"` + s.testChallengerID + `","opponentCharacterId":"` + s.testOpponentID + `"}`
	rec := s.do(http.MethodPost, "/api/challenge", body, s.token(s.testUserID, ""))

	s.Equal(http.StatusForbidden, rec.Code)
	s.Equal("FORBIDDEN", s.decode(rec)["error"])
}

func (s *HandlerTestSuite) TestActionActiveOutcome() {
	s.mockService.EXPECT().
		ApplyAction(gomock.Any(), &duel.ApplyActionInput{
			Caller:           duel.Caller{UserID: s.testUserID},
			DuelID:           s.testDuelID,
			Action:           models.ActionCast,
			ActorCharacterID: s.testChallengerID,
		}).
		Return(&duel.ApplyActionOutput{
			DuelID:       s.testDuelID,
			Status:       models.DuelStatusActive,
			Action:       models.ActionCast,
			Amount:       8,
			ChallengerHP: 30,
			OpponentHP:   12,
		}, nil)

	rec := s.do(http.MethodPost, "/api/"+s.testDuelID+"/cast",
		`{"actorCharacterId":"`+s.testChallengerID+`"}`, s.token(s.testUserID, ""))

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Equal("Active", body["status"])
	s.Equal("cast", body["action"])
	s.Equal(float64(8), body["amount"])
	s.Equal(float64(30), body["challengerHp"])
	s.Equal(float64(12), body["opponentHp"])
}

func (s *HandlerTestSuite) TestActionFinishedOutcome() {
	s.mockService.EXPECT().
		ApplyAction(gomock.Any(), gomock.Any()).
		Return(&duel.ApplyActionOutput{
			Status:            models.DuelStatusFinished,
			WinnerCharacterID: s.testChallengerID,
			Loot:              &models.LootResult{Transferred: &models.LootTransfer{ItemInstanceID: "inst-1", ItemID: "item-1"}},
			LootConfirmed:     true,
		}, nil)

	rec := s.do(http.MethodPost, "/api/"+s.testDuelID+"/attack",
		`{"actorCharacterId":"`+s.testChallengerID+`"}`, s.token(s.testUserID, ""))

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Equal("Finished", body["status"])
	s.Equal(s.testChallengerID, body["winnerCharacterId"])
	s.Equal(true, body["lootConfirmed"])
	loot, ok := body["loot"].(map[string]interface{})
	s.Require().True(ok)
	s.NotNil(loot["transferred"])
	s.NotContains(body, "challengerHp")
}

func (s *HandlerTestSuite) TestActionErrorMapping() {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{duel.ErrDuelNotFound, http.StatusNotFound, "DUEL_NOT_FOUND"},
		{duel.ErrNotAParticipant, http.StatusForbidden, "NOT_A_PARTICIPANT"},
		{duel.ErrDuelNotActive, http.StatusConflict, "DUEL_NOT_ACTIVE"},
		{duel.ErrCooldown, http.StatusTooManyRequests, "COOLDOWN"},
		{duel.ErrInvalidAction, http.StatusBadRequest, "INVALID_ACTION"},
		{duel.ErrUpstream, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{duel.ErrStorage, http.StatusInternalServerError, "STORAGE_ERROR"},
	}

	for _, tc := range cases {
		s.mockService.EXPECT().ApplyAction(gomock.Any(), gomock.Any()).Return(nil, tc.err)

		rec := s.do(http.MethodPost, "/api/"+s.testDuelID+"/heal",
			`{"actorCharacterId":"`+s.testChallengerID+`"}`, s.token(s.testUserID, ""))

		s.Equal(tc.status, rec.Code, tc.code)
		s.Equal(tc.code, s.decode(rec)["error"])
	}
}

func (s *HandlerTestSuite) TestActionTimeoutReportsDraw() {
	s.mockService.EXPECT().ApplyAction(gomock.Any(), gomock.Any()).Return(nil, duel.ErrTimeout)

	rec := s.do(http.MethodPost, "/api/"+s.testDuelID+"/attack",
		`{"actorCharacterId":"`+s.testChallengerID+`"}`, s.token(s.testUserID, ""))

	s.Equal(http.StatusConflict, rec.Code)
	body := s.decode(rec)
	s.Equal("TIMEOUT", body["error"])
	s.Equal("Draw", body["status"])
}

func (s *HandlerTestSuite) TestUnknownActionIsNotRouted() {
	rec := s.do(http.MethodPost, "/api/"+s.testDuelID+"/dance",
		`{"actorCharacterId":"`+s.testChallengerID+`"}`, s.token(s.testUserID, ""))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerTestSuite) TestGetDuel() {
	s.mockService.EXPECT().
		GetDuel(gomock.Any(), &duel.GetDuelInput{
			Caller: duel.Caller{UserID: s.testUserID, Role: "GameMaster"},
			DuelID: s.testDuelID,
		}).
		Return(&duel.GetDuelOutput{Duel: &models.Duel{ID: s.testDuelID, Status: models.DuelStatusDraw}}, nil)

	rec := s.do(http.MethodGet, "/api/duels/"+s.testDuelID, "", s.token(s.testUserID, "GameMaster"))

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	d, ok := body["duel"].(map[string]interface{})
	s.Require().True(ok)
	s.Equal("Draw", d["status"])
	s.Equal([]interface{}{}, body["actions"])
}

func TestBearerToken(t *testing.T) {
	cases := map[string]struct {
		header string
		token  string
		ok     bool
	}{
		"valid":        {"Bearer abc", "abc", true},
		"lower scheme": {"bearer abc", "abc", true},
		"no token":     {"Bearer ", "", false},
		"basic":        {"Basic abc", "", false},
		"empty":        {"", "", false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			token, ok := bearerToken(tc.header)
			if ok != tc.ok || token != tc.token {
				t.Fatalf("bearerToken(%q) = %q, %v", tc.header, token, ok)
			}
		})
	}
}
