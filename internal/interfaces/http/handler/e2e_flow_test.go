package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appidentity "github.com/linkbio/backend/internal/application/identity"
	applinkbio "github.com/linkbio/backend/internal/application/linkbio"
	"github.com/linkbio/backend/internal/infrastructure/auth"
	"github.com/linkbio/backend/internal/infrastructure/config"
	"github.com/linkbio/backend/internal/infrastructure/persistence"
	"github.com/linkbio/backend/internal/infrastructure/persistence/models"
	"github.com/linkbio/backend/internal/interfaces/http/middleware"
	"github.com/linkbio/backend/internal/interfaces/http/router"
)

// newFlowAPI wires the full stack over an in-memory SQLite database, so
// the flow below exercises the real repositories instead of mocks.
func newFlowAPI(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	// SQLite serializes writes through a single connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.AccountModel{},
		&models.ProfileModel{},
		&models.LinkModel{},
	))

	logger := zap.NewNop()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:            "test-secret-key-at-least-32-chars",
		SessionExpiration: time.Hour,
		Issuer:            "test-issuer",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	cookieCfg := config.CookieConfig{Name: "session_token", Path: "/", SameSite: "lax"}

	accountRepo := persistence.NewGormAccountRepository(db)
	profileRepo := persistence.NewGormProfileRepository(db)
	linkRepo := persistence.NewGormLinkRepository(db)

	authService := appidentity.NewAuthService(accountRepo, profileRepo, jwtService, blacklist, logger)
	profileService := applinkbio.NewProfileService(profileRepo, accountRepo, logger)
	linkService := applinkbio.NewLinkService(linkRepo, logger)
	publicService := applinkbio.NewPublicProfileService(profileRepo, linkRepo, logger)

	sessionAuth := middleware.SessionAuth(middleware.SessionAuthConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		CookieName:     cookieCfg.Name,
		Logger:         logger,
	})

	engine := gin.New()
	r := router.NewRouter(engine)
	r.Register(NewAuthHandler(authService, cookieCfg, sessionAuth, nil))
	r.Register(NewProfileHandler(profileService, sessionAuth))
	r.Register(NewLinkHandler(linkService, sessionAuth, nil))
	r.Register(NewPublicHandler(publicService))
	r.Setup()

	return engine
}

type flowClient struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func (c *flowClient) do(method, path, body string, expectStatus int) map[string]json.RawMessage {
	c.t.Helper()
	api := &testAPI{engine: c.engine}
	rec := api.request(c.t, method, path, body, c.token)
	require.Equal(c.t, expectStatus, rec.Code, "unexpected status for %s %s: %s", method, path, rec.Body.String())

	raw := rec.Body.Bytes()
	if len(raw) == 0 || raw[0] == '[' || string(raw) == "null" {
		return nil
	}
	var out map[string]json.RawMessage
	require.NoError(c.t, json.Unmarshal(raw, &out))
	return out
}

func (c *flowClient) doList(method, path string, expectStatus int) []map[string]interface{} {
	c.t.Helper()
	api := &testAPI{engine: c.engine}
	rec := api.request(c.t, method, path, "", c.token)
	require.Equal(c.t, expectStatus, rec.Code)
	var out []map[string]interface{}
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSignupToClickFlow(t *testing.T) {
	engine := newFlowAPI(t)
	client := &flowClient{t: t, engine: engine}

	// Register and sign in
	client.do(http.MethodPost, "/api/auth/signup",
		`{"email":"alice@x.com","password":"password123","username":"alice","displayName":"Alice"}`,
		http.StatusOK)

	signin := client.do(http.MethodPost, "/api/auth/signin",
		`{"email":"alice@x.com","password":"password123"}`, http.StatusOK)
	var session struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(signin["session"], &session))
	client.token = session.AccessToken

	// Create a link; the first link gets order index 0
	created := client.do(http.MethodPost, "/api/links",
		`{"title":"Blog","url":"https://a.example"}`, http.StatusOK)
	var linkID string
	require.NoError(t, json.Unmarshal(created["id"], &linkID))
	assert.Equal(t, "0", string(created["order_index"]))
	assert.Equal(t, "0", string(created["click_count"]))

	// The public profile shows the link without account identity
	public := client.do(http.MethodGet, "/api/public/profile/alice", "", http.StatusOK)
	var publicLinks []map[string]interface{}
	require.NoError(t, json.Unmarshal(public["links"], &publicLinks))
	require.Len(t, publicLinks, 1)
	assert.Equal(t, "Blog", publicLinks[0]["title"])
	var publicProfile map[string]interface{}
	require.NoError(t, json.Unmarshal(public["profile"], &publicProfile))
	assert.NotContains(t, publicProfile, "email")
	assert.NotContains(t, publicProfile, "id")

	// One tracked click shows up on the authenticated list
	client.do(http.MethodPost, "/api/track-click", `{"linkId":"`+linkID+`"}`, http.StatusOK)

	links := client.doList(http.MethodGet, "/api/links", http.StatusOK)
	require.Len(t, links, 1)
	assert.Equal(t, float64(1), links[0]["click_count"])
}

func TestConcurrentClickTracking(t *testing.T) {
	engine := newFlowAPI(t)
	client := &flowClient{t: t, engine: engine}

	client.do(http.MethodPost, "/api/auth/signup",
		`{"email":"alice@x.com","password":"password123","username":"alice","displayName":"Alice"}`,
		http.StatusOK)
	signin := client.do(http.MethodPost, "/api/auth/signin",
		`{"email":"alice@x.com","password":"password123"}`, http.StatusOK)
	var session struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(signin["session"], &session))
	client.token = session.AccessToken

	created := client.do(http.MethodPost, "/api/links",
		`{"title":"Blog","url":"https://a.example"}`, http.StatusOK)
	var linkID string
	require.NoError(t, json.Unmarshal(created["id"], &linkID))

	const clicks = 20
	var wg sync.WaitGroup
	for i := 0; i < clicks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			api := &testAPI{engine: engine}
			rec := api.request(t, http.MethodPost, "/api/track-click", `{"linkId":"`+linkID+`"}`, "")
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()

	links := client.doList(http.MethodGet, "/api/links", http.StatusOK)
	require.Len(t, links, 1)
	assert.Equal(t, float64(clicks), links[0]["click_count"])
}

func TestOrderIndexGapsNotCompacted(t *testing.T) {
	engine := newFlowAPI(t)
	client := &flowClient{t: t, engine: engine}

	client.do(http.MethodPost, "/api/auth/signup",
		`{"email":"alice@x.com","password":"password123","username":"alice","displayName":"Alice"}`,
		http.StatusOK)
	signin := client.do(http.MethodPost, "/api/auth/signin",
		`{"email":"alice@x.com","password":"password123"}`, http.StatusOK)
	var session struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(signin["session"], &session))
	client.token = session.AccessToken

	var ids []string
	for i := 0; i < 3; i++ {
		created := client.do(http.MethodPost, "/api/links",
			fmt.Sprintf(`{"title":"Link %d","url":"https://l%d.example"}`, i, i), http.StatusOK)
		var id string
		require.NoError(t, json.Unmarshal(created["id"], &id))
		ids = append(ids, id)
	}

	// Delete the last link; the next creation continues past the gap
	client.do(http.MethodDelete, "/api/links/"+ids[2], "", http.StatusOK)

	created := client.do(http.MethodPost, "/api/links",
		`{"title":"After gap","url":"https://gap.example"}`, http.StatusOK)
	assert.Equal(t, "2", string(created["order_index"]))
}

func TestOwnershipIsolationAcrossAccounts(t *testing.T) {
	engine := newFlowAPI(t)
	alice := &flowClient{t: t, engine: engine}
	mallory := &flowClient{t: t, engine: engine}

	for _, u := range []struct {
		client   *flowClient
		email    string
		username string
	}{
		{alice, "alice@x.com", "alice"},
		{mallory, "mallory@x.com", "mallory"},
	} {
		u.client.do(http.MethodPost, "/api/auth/signup",
			`{"email":"`+u.email+`","password":"password123","username":"`+u.username+`","displayName":"U"}`,
			http.StatusOK)
		signin := u.client.do(http.MethodPost, "/api/auth/signin",
			`{"email":"`+u.email+`","password":"password123"}`, http.StatusOK)
		var session struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.Unmarshal(signin["session"], &session))
		u.client.token = session.AccessToken
	}

	created := alice.do(http.MethodPost, "/api/links",
		`{"title":"Blog","url":"https://a.example"}`, http.StatusOK)
	var linkID string
	require.NoError(t, json.Unmarshal(created["id"], &linkID))

	// A foreign update reports 200 with a null body and changes nothing
	api := &testAPI{engine: engine}
	rec := api.request(t, http.MethodPut, "/api/links/"+linkID, `{"title":"Hijacked"}`, mallory.token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	// An owner's field-less update is a read, not a null body
	own := alice.do(http.MethodPut, "/api/links/"+linkID, `{}`, http.StatusOK)
	require.NotNil(t, own)
	assert.Equal(t, `"Blog"`, string(own["title"]))

	// The same field-less update from a foreign account still nulls
	rec = api.request(t, http.MethodPut, "/api/links/"+linkID, `{}`, mallory.token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	// A foreign delete reports success and changes nothing
	mallory.do(http.MethodDelete, "/api/links/"+linkID, "", http.StatusOK)

	links := alice.doList(http.MethodGet, "/api/links", http.StatusOK)
	require.Len(t, links, 1)
	assert.Equal(t, "Blog", links[0]["title"])
}
