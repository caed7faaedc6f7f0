package webui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/hostdoc"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/inspector"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/logging"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/metrics"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/preview"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/webui/auth"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/workflow"

	"go.uber.org/zap/zaptest"
)

type serverFixture struct {
	server *Server
	host   *hostdoc.Memory
	store  *metrics.Store
}

func newServerFixture(t *testing.T, authProvider AuthProvider) *serverFixture {
	t.Helper()
	zl := zaptest.NewLogger(t)
	logger := logging.NewTestLogger(zl.Core())

	host := hostdoc.NewMemory()
	store := metrics.NewStore(metrics.DefaultStoreConfig(), time.Now())
	controller := workflow.NewController(
		host,
		inspector.New(host, logger),
		preview.NewSimulatedProvider(time.Millisecond, logger),
		preview.DefaultLabels(),
		logger,
		store,
	)
	api := NewPanelAPI(controller, store, nil, zl)
	return &serverFixture{
		server: NewServer(DefaultServerConfig(), api, authProvider, zl),
		host:   host,
		store:  store,
	}
}

func (f *serverFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) workflow.View {
	t.Helper()
	var view workflow.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decoding view: %v (body: %s)", err, rec.Body.String())
	}
	return view
}

func TestServer_HealthAndRoot(t *testing.T) {
	f := newServerFixture(t, nil)

	if rec := f.do(t, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("/health status = %d", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/", ""); rec.Code != http.StatusTemporaryRedirect || rec.Header().Get("Location") != "/panel" {
		t.Errorf("/ = (%d, %q), want redirect to /panel", rec.Code, rec.Header().Get("Location"))
	}
	if rec := f.do(t, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("/nope status = %d, want 404", rec.Code)
	}
}

func TestServer_ServesPanelPage(t *testing.T) {
	f := newServerFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/panel", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/panel status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "AI Image Panel") {
		t.Error("/panel body is not the panel page")
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response missing request ID header")
	}
}

func TestAPI_GenerateApplyRefreshFlow(t *testing.T) {
	f := newServerFixture(t, nil)
	f.host.OpenDocument(hostdoc.Document{Name: "Poster", WidthPx: 1024, HeightPx: 768, Resolution: 72})

	// Generate
	body := `{"prompt":"a red fox in snow","model":"grok","workflow":"edit","strength":40,"preserveSubject":true}`
	rec := f.do(t, http.MethodPost, "/api/generate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("/api/generate status = %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	if view.State != workflow.StatePreviewReady || !view.ApplyEnabled {
		t.Fatalf("generate view = %+v", view)
	}
	if !strings.HasPrefix(view.PreviewDataURI, "data:image/svg+xml,") {
		t.Errorf("PreviewDataURI = %.40q", view.PreviewDataURI)
	}

	// State reflects the generate
	view = decodeView(t, f.do(t, http.MethodGet, "/api/state", ""))
	if !view.HasPreview {
		t.Error("/api/state lost the preview")
	}

	// Apply creates a layer
	view = decodeView(t, f.do(t, http.MethodPost, "/api/apply", ""))
	if view.Status.Kind != workflow.StatusSuccess {
		t.Fatalf("apply status = %+v", view.Status)
	}
	if layers := f.host.LayerNames(); len(layers) != 2 {
		t.Errorf("layers after apply = %v", layers)
	}

	// Refresh updates the hint
	view = decodeView(t, f.do(t, http.MethodPost, "/api/refresh", ""))
	if !strings.Contains(view.DocumentHint, "2 layer(s)") {
		t.Errorf("refresh hint = %q", view.DocumentHint)
	}

	// Metrics counted all three operations
	var m metrics.OperationMetrics
	if err := json.Unmarshal(f.do(t, http.MethodGet, "/api/metrics", "").Body.Bytes(), &m); err != nil {
		t.Fatalf("decoding metrics: %v", err)
	}
	if m.TotalOperations != 3 || m.TotalErrors != 0 {
		t.Errorf("metrics = %+v, want 3 operations", m)
	}
}

func TestAPI_MethodAndBodyValidation(t *testing.T) {
	f := newServerFixture(t, nil)

	if rec := f.do(t, http.MethodGet, "/api/generate", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/generate status = %d, want 405", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/api/generate", "{not json"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want 400", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/api/journal", ""); rec.Code != http.StatusNotFound {
		t.Errorf("journal disabled status = %d, want 404", rec.Code)
	}
}

func TestAPI_InvalidSnapshotSurfacesWarning(t *testing.T) {
	f := newServerFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/generate", `{"prompt":"","model":"grok","workflow":"edit"}`)
	view := decodeView(t, rec)
	if view.Status.Kind != workflow.StatusWarning || view.State != workflow.StateIdle {
		t.Errorf("empty prompt view = %+v", view)
	}
}

func TestServer_AuthGatesPanelAndAPI(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatal(err)
	}
	mw := auth.NewMiddleware(hash, auth.NewSessionStore(time.Hour), auth.DefaultCookieConfig(), zaptest.NewLogger(t))
	f := newServerFixture(t, mw)

	if rec := f.do(t, http.MethodGet, "/api/state", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated /api/state status = %d, want 401", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/panel", ""); rec.Code != http.StatusSeeOther {
		t.Errorf("unauthenticated /panel status = %d, want login redirect", rec.Code)
	}
	// Health and login stay reachable
	if rec := f.do(t, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("/health status = %d with auth enabled", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/login", ""); rec.Code != http.StatusOK {
		t.Errorf("/login status = %d", rec.Code)
	}
}
