package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bullyguard/bullyguard/internal/api/handler"
	"github.com/bullyguard/bullyguard/internal/classifier"
	"github.com/bullyguard/bullyguard/internal/core/domain"
	"github.com/bullyguard/bullyguard/internal/core/service"
	"github.com/bullyguard/bullyguard/internal/infrastructure/db/sqlite"
	"github.com/bullyguard/bullyguard/internal/session"
	"github.com/bullyguard/bullyguard/internal/wordcloud"
)

type testApp struct {
	e          *echo.Echo
	staticDir  string
	classified int
}

type countingClassifier struct {
	next  *classifier.Classifier
	calls *int
}

func (c countingClassifier) Classify(ctx context.Context, text string) (domain.Prediction, error) {
	*c.calls++
	return c.next.Classify(ctx, text)
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	log := zerolog.Nop()

	db, err := sqlite.Open(context.Background(), sqlite.Config{Path: filepath.Join(dir, "app.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	model, err := classifier.LoadModel(filepath.Join("..", "..", "model", "classifier.json"))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	clf, err := classifier.New(classifier.NewHashingEmbedder(classifier.DefaultDimensions), model, log)
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}
	renderer, err := wordcloud.NewRenderer(0, 0, 0)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	app := &testApp{staticDir: filepath.Join(dir, "static")}
	history := sqlite.NewHistoryRepository(db)

	e, err := NewRouter(Dependencies{
		AuthService:       service.NewAuthService(sqlite.NewCredentialRepository(db), bcrypt.MinCost, log),
		PredictionService: service.NewPredictionService(countingClassifier{next: clf, calls: &app.classified}, history, log),
		AnalyticsService: service.NewAnalyticsService(history, renderer,
			filepath.Join(app.staticDir, "wordcloud.png"), "/static/wordcloud.png", log),
		Sessions:  session.NewManager(session.NewMemoryStore(time.Hour), "", time.Hour, false),
		Readiness: map[string]handler.PingFunc{"sqlite": db.PingContext},
		StaticDir: app.staticDir,
		Logger:    log,
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	app.e = e
	return app
}

func (a *testApp) do(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// login registers and signs in a user, returning the session cookies.
func (a *testApp) login(t *testing.T, user, pw string) []*http.Cookie {
	t.Helper()
	rec := a.do(postForm("/register", url.Values{"user": {user}, "pw": {pw}}), nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("register: expected 302, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = a.do(postForm("/login", url.Values{"user": {user}, "pw": {pw}}), nil)
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/home" {
		t.Fatalf("login: expected 302 to /home, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login: no session cookie")
	}
	return cookies
}

func TestRouter_ProtectedRoutesRedirect(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/home", "/predict", "/history", "/analytics"} {
		rec := app.do(httptest.NewRequest(http.MethodGet, path, nil), nil)
		if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
			t.Errorf("%s: expected 302 to /login, got %d %q", path, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}

	rec := app.do(postForm("/predict", url.Values{"text": {"you are worthless"}}), nil)
	if rec.Code != http.StatusFound {
		t.Errorf("POST /predict: expected 302, got %d", rec.Code)
	}
	if app.classified != 0 {
		t.Errorf("classifier must not run without a session, ran %d times", app.classified)
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "alice", "pw1")

	rec := app.do(httptest.NewRequest(http.MethodGet, "/home", nil), cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("home: expected 200, got %d", rec.Code)
	}

	rec = app.do(postForm("/predict", url.Values{"text": {"you are worthless"}}), cookies)
	body := rec.Body.String()
	if rec.Code != http.StatusOK || !strings.Contains(body, ">BULLYING<") {
		t.Fatalf("predict: expected BULLYING, got %d: %s", rec.Code, body)
	}
	for _, step := range domain.RemediationSteps(domain.LabelBullying) {
		if !strings.Contains(body, step) {
			t.Errorf("predict: missing step %q", step)
		}
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/history", nil), cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", rec.Code)
	}
	if n := strings.Count(rec.Body.String(), `<td class="bullying">bullying</td>`); n != 1 {
		t.Errorf("history: expected one bullying row, got %d", n)
	}

	rec = app.do(postForm("/predict", url.Values{"text": {"have a nice day"}}), cookies)
	body = rec.Body.String()
	if !strings.Contains(body, ">NOTBULLYING<") {
		t.Fatalf("predict: expected NOTBULLYING, got %s", body)
	}
	if strings.Contains(body, `id="steps"`) {
		t.Error("predict: no remediation steps expected for notbullying")
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/analytics", nil), cookies)
	body = rec.Body.String()
	if rec.Code != http.StatusOK ||
		!strings.Contains(body, `<td id="bullying-count">1</td>`) ||
		!strings.Contains(body, `<td id="notbullying-count">1</td>`) {
		t.Fatalf("analytics: unexpected %d: %s", rec.Code, body)
	}
	if _, err := os.Stat(filepath.Join(app.staticDir, "wordcloud.png")); err != nil {
		t.Fatalf("analytics: word cloud not written: %v", err)
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/static/wordcloud.png", nil), nil)
	if rec.Code != http.StatusOK || rec.Header().Get(echo.HeaderContentType) != "image/png" {
		t.Errorf("static: expected png, got %d %q", rec.Code, rec.Header().Get(echo.HeaderContentType))
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/logout", nil), cookies)
	if rec.Code != http.StatusFound {
		t.Fatalf("logout: expected 302, got %d", rec.Code)
	}
	rec = app.do(httptest.NewRequest(http.MethodGet, "/home", nil), cookies)
	if rec.Code != http.StatusFound {
		t.Errorf("home after logout: expected 302, got %d", rec.Code)
	}
}

func TestRouter_AnalyticsEmptyHistory(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "bob", "pw")

	rec := app.do(httptest.NewRequest(http.MethodGet, "/analytics", nil), cookies)
	body := rec.Body.String()
	if rec.Code != http.StatusOK ||
		!strings.Contains(body, `<td id="bullying-count">0</td>`) ||
		!strings.Contains(body, `<td id="notbullying-count">0</td>`) {
		t.Fatalf("expected zero counts, got %d: %s", rec.Code, body)
	}
	if !strings.Contains(body, "/static/wordcloud.png") {
		t.Error("expected placeholder image to be linked")
	}
}

func TestRouter_HistoryIsPerUser(t *testing.T) {
	app := newTestApp(t)
	alice := app.login(t, "alice", "pw1")
	bob := app.login(t, "bob", "pw2")

	_ = app.do(postForm("/predict", url.Values{"text": {"you are worthless"}}), alice)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/history", nil), bob)
	if strings.Contains(rec.Body.String(), "you are worthless") {
		t.Error("bob must not see alice's history")
	}
}

func TestRouter_LoginFailureRendersForm(t *testing.T) {
	app := newTestApp(t)
	_ = app.login(t, "alice", "pw1")

	rec := app.do(postForm("/login", url.Values{"user": {"alice"}, "pw": {"nope"}}), nil)
	if rec.Code != http.StatusOK || len(rec.Result().Cookies()) != 0 {
		t.Fatalf("expected 200 without cookie, got %d %v", rec.Code, rec.Result().Cookies())
	}
	if !strings.Contains(rec.Body.String(), `action="/login"`) {
		t.Error("expected login form")
	}
}

func TestRouter_PredictBlankText(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "alice", "pw1")

	rec := app.do(postForm("/predict", url.Values{"text": {"   "}}), cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if app.classified != 0 {
		t.Error("classifier must not run for blank text")
	}
}

func TestRouter_ProbesAndErrors(t *testing.T) {
	app := newTestApp(t)

	if rec := app.do(httptest.NewRequest(http.MethodGet, "/health", nil), nil); rec.Code != http.StatusOK {
		t.Errorf("/health: expected 200, got %d", rec.Code)
	}
	if rec := app.do(httptest.NewRequest(http.MethodGet, "/health/ready", nil), nil); rec.Code != http.StatusOK {
		t.Errorf("/health/ready: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := app.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "bullyguard_http_requests_total") {
		t.Errorf("/metrics: expected exposition with app metrics, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec = app.do(req, nil)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("expected JSON 404, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/nope", nil), nil)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "<html") {
		t.Errorf("expected HTML 404, got %d", rec.Code)
	}
}
