package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testEnv struct {
	handler *Handler
	posts   *fakePostStore
	users   *fakeUserStore
	subs    *fakeSubscriberStore
	pushes  *fakePushTokenStore
	mail    *fakeMailer
	pusher  *fakePusher
	router  *gin.Engine
}

// newTestEnv wires a Handler to in-memory fakes and registers the API routes.
// Admin routes skip the auth middleware here; middleware behavior has its own
// tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		posts:  &fakePostStore{},
		users:  &fakeUserStore{},
		subs:   &fakeSubscriberStore{},
		pushes: &fakePushTokenStore{},
		mail:   &fakeMailer{},
		pusher: &fakePusher{},
	}
	env.handler = &Handler{
		Posts:       env.posts,
		Users:       env.users,
		Subscribers: env.subs,
		PushTokens:  env.pushes,
		Mail:        env.mail,
		Push:        env.pusher,
		JWTSecret:   testSecret,
	}

	r := gin.New()
	h := env.handler
	r.GET("/api/posts", h.ListPosts)
	r.GET("/api/posts/:slug", h.GetPost)
	r.GET("/api/tags", h.ListTags)
	r.POST("/api/subscribe", h.Subscribe)
	r.GET("/api/subscribe/confirm", h.ConfirmSubscription)
	r.POST("/api/push/register", h.RegisterPushToken)
	r.POST("/api/contact", h.Contact)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/logout", h.Logout)
	r.POST("/api/auth/register", h.Register)
	r.GET("/api/admin/posts", h.AdminListPosts)
	r.POST("/api/admin/posts", h.CreatePost)
	r.PUT("/api/admin/posts/:id", h.UpdatePost)
	r.DELETE("/api/admin/posts/:id", h.DeletePost)
	r.GET("/api/admin/subscribers", h.AdminListSubscribers)
	r.POST("/api/admin/newsletter", h.SendNewsletter)
	r.POST("/api/admin/notify", h.Notify)
	env.router = r

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unpacks the {success, data, error} envelope.
func decode(t *testing.T, w *httptest.ResponseRecorder) (bool, map[string]interface{}, string) {
	t.Helper()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	data := map[string]interface{}{}
	if len(env.Data) > 0 && env.Data[0] == '{' {
		require.NoError(t, json.Unmarshal(env.Data, &data))
	}
	return env.Success, data, env.Error
}
