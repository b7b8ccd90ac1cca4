package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func (r *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, staffID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.keys[staffID.String()+key]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (r *fakeIdempotencyRepo) Create(ctx context.Context, k *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.keys == nil {
		r.keys = map[string]entity.IdempotencyKey{}
	}
	r.keys[k.StaffID.String()+k.Key] = *k
	return nil
}

func (r *fakeIdempotencyRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeSettingsRepo struct {
	settings *entity.AppSettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.AppSettings, error) {
	return r.settings, nil
}

func (r *fakeSettingsRepo) Save(ctx context.Context, s *entity.AppSettings) error {
	r.settings = s
	return nil
}

var (
	waiter = service.Actor{StaffID: uuid.New(), Name: "Ana", Role: enum.UserRoleWaiter}
	admin  = service.Actor{StaffID: uuid.New(), Name: "Admin", Role: enum.UserRoleAdmin}
)

func withActor(actor service.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ActorKey, actor)
		c.Next()
	}
}

func do(router http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	repo := &fakeIdempotencyRepo{}
	calls := 0

	router := gin.New()
	router.POST("/finalize", withActor(waiter), Idempotency(IdempotencyConfig{Repo: repo, Required: true}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"sale": calls})
	})

	if w := do(router, http.MethodPost, "/finalize", `{"paid":true}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("missing key status = %d, want 400", w.Code)
	}

	key := map[string]string{IdempotencyKeyHeader: "tap-1"}
	first := do(router, http.MethodPost, "/finalize", `{"paid":true}`, key)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d", first.Code)
	}
	second := do(router, http.MethodPost, "/finalize", `{"paid":true}`, key)
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Errorf("replay = %d %s", second.Code, second.Body.String())
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replay header missing")
	}
	if calls != 1 {
		t.Errorf("handler ran %d times, want 1", calls)
	}

	if w := do(router, http.MethodPost, "/finalize", `{"paid":false}`, key); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("reused key with other body status = %d, want 422", w.Code)
	}
}

func TestIdempotencyKeysArePerStaff(t *testing.T) {
	repo := &fakeIdempotencyRepo{}
	calls := 0
	handle := func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{})
	}

	router := gin.New()
	router.POST("/a", withActor(waiter), Idempotency(IdempotencyConfig{Repo: repo}), handle)
	router.POST("/b", withActor(admin), Idempotency(IdempotencyConfig{Repo: repo}), handle)

	key := map[string]string{IdempotencyKeyHeader: "same"}
	do(router, http.MethodPost, "/a", `{}`, key)
	do(router, http.MethodPost, "/b", `{}`, key)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	repo := &fakeIdempotencyRepo{}
	router := gin.New()
	router.POST("/finalize", withActor(waiter), Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		c.JSON(http.StatusPreconditionFailed, gin.H{})
	})

	do(router, http.MethodPost, "/finalize", `{}`, map[string]string{IdempotencyKeyHeader: "k"})
	if len(repo.keys) != 0 {
		t.Errorf("stored %d keys for a failed request", len(repo.keys))
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	defer rl.Close()

	router := gin.New()
	router.GET("/waiter", withActor(waiter), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/admin", withActor(admin), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := do(router, http.MethodGet, "/waiter", "", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}
	w := do(router, http.MethodGet, "/waiter", "", nil)
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") == "" {
		t.Errorf("over limit status = %d", w.Code)
	}
	if w := do(router, http.MethodGet, "/admin", "", nil); w.Code != http.StatusOK {
		t.Errorf("other staff member was limited: %d", w.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	authService := service.NewAuthService(nil, jwtManager, 10, 5)

	var got service.Actor
	router := gin.New()
	router.GET("/me", AuthMiddleware(authService), func(c *gin.Context) {
		got, _ = CurrentActor(c)
		c.Status(http.StatusOK)
	})

	token, _, err := jwtManager.GenerateToken(waiter.StaffID, waiter.Name, waiter.Role.String())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := map[string]string{}
			if tt.header != "" {
				header["Authorization"] = tt.header
			}
			if w := do(router, http.MethodGet, "/me", "", header); w.Code != tt.code {
				t.Errorf("status = %d, want %d", w.Code, tt.code)
			}
		})
	}
	if got.StaffID != waiter.StaffID || got.Role != enum.UserRoleWaiter {
		t.Errorf("actor = %+v", got)
	}
}

func TestRequireCapability(t *testing.T) {
	settingsService := service.NewSettingsService(&fakeSettingsRepo{})
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	router := gin.New()
	router.GET("/w/reports", withActor(waiter), RequireCapability(settingsService, entity.CapabilityReports), ok)
	router.GET("/w/settings", withActor(waiter), RequireCapability(settingsService, entity.CapabilitySettings), ok)
	router.GET("/a/settings", withActor(admin), RequireCapability(settingsService, entity.CapabilitySettings), ok)
	router.GET("/anon", RequireCapability(settingsService, entity.CapabilityMenu), ok)
	router.POST("/w/staff", withActor(waiter), RequireAdmin(), ok)

	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/w/reports", http.StatusOK},
		{http.MethodGet, "/w/settings", http.StatusForbidden},
		{http.MethodGet, "/a/settings", http.StatusOK},
		{http.MethodGet, "/anon", http.StatusUnauthorized},
		{http.MethodPost, "/w/staff", http.StatusForbidden},
	}
	for _, tt := range tests {
		if w := do(router, tt.method, tt.path, "", nil); w.Code != tt.code {
			t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, w.Code, tt.code)
		}
	}
}
