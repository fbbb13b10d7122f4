//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"family-tree-go/internal/config"
	"family-tree-go/internal/db"
	accountdomain "family-tree-go/internal/domain/account"
	authdomain "family-tree-go/internal/domain/auth"
	eventdomain "family-tree-go/internal/domain/event"
	familydomain "family-tree-go/internal/domain/family"
	historydomain "family-tree-go/internal/domain/history"
	marriagedomain "family-tree-go/internal/domain/marriage"
	mediadomain "family-tree-go/internal/domain/media"
	memberdomain "family-tree-go/internal/domain/member"
	reldomain "family-tree-go/internal/domain/relationship"
	"family-tree-go/internal/facedetect"
	accountrepo "family-tree-go/internal/repository/postgres/account"
	eventrepo "family-tree-go/internal/repository/postgres/event"
	familyrepo "family-tree-go/internal/repository/postgres/family"
	historyrepo "family-tree-go/internal/repository/postgres/history"
	marriagerepo "family-tree-go/internal/repository/postgres/marriage"
	mediarepo "family-tree-go/internal/repository/postgres/media"
	memberrepo "family-tree-go/internal/repository/postgres/member"
	relrepo "family-tree-go/internal/repository/postgres/relationship"
	"family-tree-go/internal/storage/cloudinary"
	"family-tree-go/internal/transport/httpserver"
	"family-tree-go/internal/transport/httpserver/handler"
	"family-tree-go/internal/transport/httpserver/middleware"
	"family-tree-go/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	server        *httptest.Server
	storageServer *httptest.Server
	faceServer    *httptest.Server
	db            *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	storageServer := newStorageServer(t)
	faceServer := newFaceServer(t)

	log := logger.NewFromEnv()

	cfg := config.Config{
		DB:  config.DBConfig{DSN: dsn},
		JWT: config.JWTConfig{Secret: "e2e-secret", AccessTTL: 15 * time.Minute, RefreshTTL: 7 * 24 * time.Hour},
		Storage: config.StorageConfig{
			BaseURL:   storageServer.URL,
			CloudName: "test",
			APIKey:    "key",
			APISecret: "secret",
			Folder:    "uploads",
			Timeout:   2 * time.Second,
		},
		FaceDetect: config.FaceDetectConfig{URL: faceServer.URL, Timeout: 2 * time.Second},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	storage := cloudinary.New(cfg.Storage)
	cropper := facedetect.NewClient(cfg.FaceDetect)

	accountRepo := accountrepo.NewPostgres(dbConn)
	accounts := accountdomain.NewService(accountRepo)
	families := familydomain.NewService(familyrepo.NewPostgres(dbConn))
	marriages := marriagedomain.NewService(marriagerepo.NewPostgres(dbConn))
	relationships := reldomain.NewService(relrepo.NewPostgres(dbConn), relrepo.NewTypePostgres(dbConn))
	members := memberdomain.NewService(memberrepo.NewPostgres(dbConn), marriages, relationships, accounts)
	mediaService := mediadomain.NewService(mediarepo.NewPostgres(dbConn), storage, cropper, log)
	events := eventdomain.NewService(eventrepo.NewPostgres(dbConn), mediaService, log)
	history := historydomain.NewService(historyrepo.NewPostgres(dbConn), mediaService, log)

	tokens := authdomain.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	auth := authdomain.NewService(accountRepo, members, families, tokens, newMemoryTokenStore())

	handlers := handler.New(auth, families, members, marriages, relationships, accounts, events, history, mediaService, log)
	jwtAuth := middleware.NewJWTAuth(tokens, log)
	router := httpserver.NewRouter(cfg, handlers, jwtAuth, log)
	server := httptest.NewServer(router)

	return &testEnv{server: server, storageServer: storageServer, faceServer: faceServer, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	e.storageServer.Close()
	e.faceServer.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

// newStorageServer stands in for the Cloudinary upload API.
func newStorageServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"public_id":  "uploads/e2e-object",
			"secure_url": "https://cdn.example.com/image/upload/v1/uploads/e2e-object.png",
			"result":     "ok",
		})
	}))
}

func newFaceServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"faces": []interface{}{}})
	}))
}

// memoryTokenStore replaces Redis so sessions can be exercised without one.
type memoryTokenStore struct {
	mu    sync.Mutex
	valid map[string]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{valid: make(map[string]string)}
}

func (s *memoryTokenStore) SaveRefresh(ctx context.Context, jti, memberID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid[jti] = memberID
	return nil
}

func (s *memoryTokenStore) IsRefreshValid(ctx context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.valid[jti]
	return ok, nil
}

func (s *memoryTokenStore) RevokeRefresh(ctx context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.valid, jti)
	return nil
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE media, family_history_records, events, accounts, parent_child_relationships, marriages, members, families RESTART IDENTITY CASCADE",
	).Error
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

func decodeData(t *testing.T, body []byte, target interface{}) {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v: %s", err, string(body))
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", string(body))
	}
	if target != nil {
		if err := json.Unmarshal(env.Data, target); err != nil {
			t.Fatalf("decode data: %v: %s", err, string(env.Data))
		}
	}
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type memberResponse struct {
	MemberID   string `json:"memberId"`
	FamilyID   string `json:"familyId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Gender     string `json:"gender"`
	Generation int    `json:"generation"`
}

type enrichedMemberResponse struct {
	memberResponse
	Spouse *struct {
		HusbandID string `json:"husbandId"`
		WifeID    string `json:"wifeId"`
	} `json:"spouse"`
	Parent *struct {
		FatherID string `json:"fatherId"`
		MotherID string `json:"motherId"`
	} `json:"parent"`
	Children []string `json:"children"`
}

type memberPageResponse struct {
	Items      []memberResponse `json:"items"`
	TotalItems int64            `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
}

func register(t *testing.T, client *http.Client, baseURL, familyName, username, password string) memberResponse {
	t.Helper()

	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/auth/register", "", map[string]string{
		"familyName": familyName,
		"username":   username,
		"password":   password,
		"email":      username + "@example.com",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	var leader memberResponse
	decodeData(t, body, &leader)
	return leader
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) tokenPairResponse {
	t.Helper()

	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	var pair tokenPairResponse
	decodeData(t, body, &pair)
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("login: expected token pair, got %s", string(body))
	}
	return pair
}

func TestE2EAuthFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var health map[string]string
	decodeData(t, body, &health)
	if health["status"] != "ok" {
		t.Fatalf("health: expected ok, got %q", health["status"])
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/members?familyId=x", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d: %s", resp.StatusCode, string(body))
	}

	leader := register(t, client, env.server.URL, "Nguyen", "founder", "secret123")
	if leader.MemberID == "" || leader.FamilyID == "" {
		t.Fatalf("register: expected leader ids, got %+v", leader)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/register", "", map[string]string{
		"familyName": "Nguyen 2",
		"username":   "founder",
		"password":   "secret123",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d: %s", resp.StatusCode, string(body))
	}

	pair := login(t, client, env.server.URL, "founder", "secret123")

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/members/"+leader.MemberID, pair.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get member: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/refresh-token", "", map[string]string{
		"refreshToken": pair.RefreshToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var refreshed tokenPairResponse
	decodeData(t, body, &refreshed)
	if refreshed.AccessToken == "" {
		t.Fatalf("refresh: expected access token, got %s", string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/logout", pair.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/refresh-token", "", map[string]string{
		"refreshToken": pair.RefreshToken,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: expected 401, got %d: %s", resp.StatusCode, string(body))
	}
}

func TestE2EFamilyTreeFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	leader := register(t, client, env.server.URL, "Nguyen", "founder", "secret123")
	pair := login(t, client, env.server.URL, "founder", "secret123")

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/members/spouse", pair.AccessToken, map[string]interface{}{
		"memberId":  leader.MemberID,
		"firstName": "Lan",
		"lastName":  "Tran",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create spouse: expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var spouse memberResponse
	decodeData(t, body, &spouse)
	if spouse.Gender != "female" {
		t.Fatalf("expected spouse gender female, got %q", spouse.Gender)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/members/child", pair.AccessToken, map[string]interface{}{
		"parentId":       leader.MemberID,
		"parentSpouseId": spouse.MemberID,
		"firstName":      "Minh",
		"lastName":       "Nguyen",
		"gender":         "male",
		"birthOrder":     1,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create child: expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var child memberResponse
	decodeData(t, body, &child)
	if child.Generation != leader.Generation+1 {
		t.Fatalf("expected child generation %d, got %d", leader.Generation+1, child.Generation)
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/members/family/"+leader.FamilyID, pair.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("family members: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var enriched []enrichedMemberResponse
	decodeData(t, body, &enriched)
	if len(enriched) != 3 {
		t.Fatalf("expected 3 family members, got %d", len(enriched))
	}
	byID := make(map[string]enrichedMemberResponse, len(enriched))
	for _, m := range enriched {
		byID[m.MemberID] = m
	}
	if got := byID[leader.MemberID]; got.Spouse == nil || got.Spouse.WifeID != spouse.MemberID {
		t.Fatalf("expected leader married to %s, got %+v", spouse.MemberID, got.Spouse)
	}
	if got := byID[child.MemberID]; got.Parent == nil ||
		got.Parent.FatherID != leader.MemberID || got.Parent.MotherID != spouse.MemberID {
		t.Fatalf("expected both parents resolved, got %+v", byID[child.MemberID].Parent)
	}
	if got := byID[leader.MemberID]; len(got.Children) != 1 || got.Children[0] != child.MemberID {
		t.Fatalf("expected leader child %s, got %v", child.MemberID, got.Children)
	}

	resp, body = requestJSON(t, client, http.MethodGet,
		env.server.URL+"/api/members/search?familyId="+leader.FamilyID+"&gender=male", pair.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var page memberPageResponse
	decodeData(t, body, &page)
	if page.TotalItems != 2 {
		t.Fatalf("expected 2 male members, got %d", page.TotalItems)
	}

	resp, body = requestJSON(t, client, http.MethodGet,
		env.server.URL+"/api/members/export?familyId="+leader.FamilyID, pair.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("export: unexpected content type %q", ct)
	}
	if len(body) == 0 {
		t.Fatalf("export: expected workbook bytes")
	}

	resp, body = requestJSON(t, client, http.MethodDelete,
		env.server.URL+"/api/members/"+child.MemberID, pair.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete member: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet,
		env.server.URL+"/api/members/"+child.MemberID, pair.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted member: expected 404, got %d: %s", resp.StatusCode, string(body))
	}
}
