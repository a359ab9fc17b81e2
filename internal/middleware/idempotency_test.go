package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"go-leavedesk/internal/middleware"
)

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cacheKey := "idemp:/leaves:user-1:abc"
	mock.ExpectGet(cacheKey).SetVal(`{"ok":true,"data":{"id":"1"}}`)

	handlerCalls := 0
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
		handlerCalls++
		c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(`{"ok":true}`))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Idempotent-Replay"))
	assert.JSONEq(t, `{"ok":true,"data":{"id":"1"}}`, w.Body.String())
	assert.Zero(t, handlerCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstRequestCachesResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cacheKey := "idemp:/leaves:user-1:abc"
	lockKey := cacheKey + ":lock"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
	mock.ExpectSet(cacheKey, `{"ok":true}`, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(lockKey).SetVal(1)

	handlerCalls := 0
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
		handlerCalls++
		c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(`{"ok":true}`))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, handlerCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	handlerCalls := 0
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
		handlerCalls++
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, handlerCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicateRejected(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cacheKey := "idemp:/leaves:user-1:abc"
	lockKey := cacheKey + ":lock"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

	handlerCalls := 0
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
		handlerCalls++
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Zero(t, handlerCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
