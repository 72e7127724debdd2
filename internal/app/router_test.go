package app

import (
	"bytes"
	"encoding/json"
	"job_board_backend/internal/config"
	"job_board_backend/internal/model"
	"job_board_backend/internal/util"
	"job_board_backend/pkg/database"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret-test-secret-test-secret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWT:       config.JWTConfig{Secret: testSecret},
		Storage:   config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
		RateLimit: config.RateLimitConfig{SubmitPerMinute: 100},
		Importer:  config.ImporterConfig{MaxBytes: 1 << 20, MaxRows: 100, DefaultCategory: "General", DefaultDifficulty: "MEDIUM"},
		Grading:   config.GradingConfig{PassMark: 50, CooldownHours: 24},
	}

	a := &App{Config: cfg, DB: db}
	repos := a.initRepositories(db, nil, cfg)
	svcs := a.initServices(repos, cfg)
	ctrls := a.initControllers(svcs, db, nil)

	router := gin.New()
	a.registerRoutes(router, ctrls, cfg)
	return &testServer{t: t, router: router}
}

func (s *testServer) token(userID string, role model.UserRole) string {
	tok, err := util.GenerateJWT(userID, role, userID+"@example.com", testSecret, time.Hour)
	if err != nil {
		s.t.Fatalf("sign token: %v", err)
	}
	return tok
}

func (s *testServer) do(req *http.Request, token string) (int, envelope) {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", req.Method, req.URL.Path, w.Body.String(), err)
		}
	}
	return w.Code, env
}

func (s *testServer) json(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, token)
}

func (s *testServer) upload(path, token, filename string, content []byte) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		s.t.Fatalf("form file: %v", err)
	}
	fw.Write(content)
	mw.WriteField("category", "Geography")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req, token)
}

var createBody = gin.H{
	"name":         "Geography 101",
	"description":  "Capitals",
	"instructions": "Pick one",
	"difficulty":   "ENTRY",
	"duration":     10,
	"questions": []gin.H{{
		"title":        "Capital of Spain?",
		"questionType": "SINGLE_CHOICE",
		"answers": []gin.H{
			{"answerText": "Madrid", "isCorrect": true},
			{"answerText": "Lisbon"},
		},
	}},
}

func createAssessment(t *testing.T, s *testServer, recruiter string) model.Assessment {
	t.Helper()
	code, env := s.json(http.MethodPost, "/api/assessments", recruiter, createBody)
	if code != http.StatusCreated {
		t.Fatalf("create: %d %s", code, env.Message)
	}
	var a model.Assessment
	if err := json.Unmarshal(env.Data, &a); err != nil {
		t.Fatalf("decode assessment: %v", err)
	}
	return a
}

func TestAuthoringRequiresRecruiter(t *testing.T) {
	s := newTestServer(t)

	if code, _ := s.json(http.MethodGet, "/api/assessments", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: %d", code)
	}
	if code, _ := s.json(http.MethodPost, "/api/assessments", s.token("c1", model.Candidate), createBody); code != http.StatusForbidden {
		t.Fatalf("candidate create: %d", code)
	}

	recruiter := s.token("r1", model.Recruiter)
	createAssessment(t, s, recruiter)
	if code, _ := s.json(http.MethodPost, "/api/assessments", recruiter, createBody); code != http.StatusConflict {
		t.Fatalf("duplicate create: %d", code)
	}
	if code, _ := s.json(http.MethodPost, "/api/assessments", s.token("a1", model.Admin), gin.H{"name": "x"}); code != http.StatusBadRequest {
		t.Fatalf("invalid body: %d", code)
	}
}

func TestCandidateViewHidesFlags(t *testing.T) {
	s := newTestServer(t)
	a := createAssessment(t, s, s.token("r1", model.Recruiter))

	code, env := s.json(http.MethodGet, "/api/assessments/"+a.ID, s.token("c1", model.Candidate), nil)
	if code != http.StatusOK {
		t.Fatalf("get: %d", code)
	}
	if strings.Contains(string(env.Data), "isCorrect") || strings.Contains(string(env.Data), "booleanText") {
		t.Fatalf("candidate sees answer flags: %s", env.Data)
	}

	_, env = s.json(http.MethodGet, "/api/assessments/"+a.ID, s.token("r1", model.Recruiter), nil)
	if !strings.Contains(string(env.Data), "isCorrect") {
		t.Fatalf("recruiter view lacks flags: %s", env.Data)
	}

	if code, _ := s.json(http.MethodGet, "/api/assessments/nope", s.token("c1", model.Candidate), nil); code != http.StatusNotFound {
		t.Fatalf("missing assessment: %d", code)
	}
}

func TestImportEndpoint(t *testing.T) {
	s := newTestServer(t)
	recruiter := s.token("r1", model.Recruiter)
	a := createAssessment(t, s, recruiter)
	path := "/api/assessments/" + a.ID + "/import"

	bad := []byte("Question,A,B,C,D,Answer\nQ1,a,b,,,A\nQ2,a,b,,,Q\n")
	code, env := s.upload(path, recruiter, "sheet.csv", bad)
	if code != http.StatusBadRequest {
		t.Fatalf("bad sheet: %d %s", code, env.Message)
	}
	var where struct {
		Row    int    `json:"row"`
		Column string `json:"column"`
	}
	json.Unmarshal(env.Data, &where)
	if where.Row != 2 || where.Column != "Answer" {
		t.Fatalf("error location: %+v", where)
	}

	if code, _ := s.upload(path, recruiter, "sheet.xlsx", bad); code != http.StatusBadRequest {
		t.Fatalf("xlsx accepted: %d", code)
	}

	good := []byte("Question,A,B,C,D,Answer,E\nCapital of Peru?,Lima,Quito,,,A,\nIs Oslo in Norway?,Yes,No,,,A,\n")
	code, env = s.upload(path, recruiter, "sheet.csv", good)
	if code != http.StatusCreated {
		t.Fatalf("good sheet: %d %s", code, env.Message)
	}

	_, env = s.json(http.MethodGet, "/api/assessments/"+a.ID, recruiter, nil)
	var got model.Assessment
	json.Unmarshal(env.Data, &got)
	if len(got.Questions) != 3 || got.Questions[1].Category != "Geography" {
		t.Fatalf("after import: %+v", got.Questions)
	}
}

func TestSubmitAndResults(t *testing.T) {
	s := newTestServer(t)
	a := createAssessment(t, s, s.token("r1", model.Recruiter))
	candidate := s.token("c1", model.Candidate)

	q := a.Questions[0]
	body := gin.H{"answers": []gin.H{{"questionId": q.ID, "answerId": q.Answers[0].ID}}}
	code, env := s.json(http.MethodPost, "/api/assessments/"+a.ID+"/submit", candidate, body)
	if code != http.StatusCreated {
		t.Fatalf("submit: %d %s", code, env.Message)
	}
	var res model.UserResult
	json.Unmarshal(env.Data, &res)
	if res.Percentage != 100 || res.Status != model.Pass || res.UserID != "c1" {
		t.Fatalf("result: %+v", res)
	}

	if code, _ := s.json(http.MethodPost, "/api/assessments/"+a.ID+"/submit", candidate, body); code != http.StatusTooManyRequests {
		t.Fatalf("cooldown: %d", code)
	}

	empty := gin.H{"answers": []gin.H{}}
	if code, _ := s.json(http.MethodPost, "/api/assessments/"+a.ID+"/submit", s.token("c2", model.Candidate), empty); code != http.StatusBadRequest {
		t.Fatalf("empty submission: %d", code)
	}

	if code, _ := s.json(http.MethodGet, "/api/users/c1/results/"+a.ID, candidate, nil); code != http.StatusOK {
		t.Fatalf("own latest: %d", code)
	}
	if code, _ := s.json(http.MethodGet, "/api/users/c2/results", candidate, nil); code != http.StatusForbidden {
		t.Fatalf("other user's results: %d", code)
	}
	if code, _ := s.json(http.MethodGet, "/api/assessments/"+a.ID+"/results", candidate, nil); code != http.StatusForbidden {
		t.Fatalf("candidate listing results: %d", code)
	}
	code, env = s.json(http.MethodGet, "/api/assessments/"+a.ID+"/results", s.token("a1", model.Admin), nil)
	var page util.PageResponse
	json.Unmarshal(env.Data, &page)
	if code != http.StatusOK || page.Total != 1 {
		t.Fatalf("admin results: %d total %d", code, page.Total)
	}
}

func TestSwaggerServesAnnotatedRoutes(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("doc.json: %d", w.Code)
	}
	for _, path := range []string{"/api/assessments/{id}/import", "/api/assessments/{id}/submit", "/api/health"} {
		if !strings.Contains(w.Body.String(), path) {
			t.Fatalf("doc.json lacks %s", path)
		}
	}

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("index.html: %d", w.Code)
	}
}
