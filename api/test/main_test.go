package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/hanifmaulana/tokokita/api"
	"github.com/hanifmaulana/tokokita/api/background"
	"github.com/hanifmaulana/tokokita/config"
	"github.com/hanifmaulana/tokokita/database"
	"github.com/hanifmaulana/tokokita/pubsub"
	"github.com/hanifmaulana/tokokita/rate"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"
)

var (
	dbHost  string
	adminDB *sqlx.DB
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		fmt.Printf("could not connect to docker: %v\n", err)
		os.Exit(1)
	}

	resource, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=postgres",
	})
	if err != nil {
		fmt.Printf("could not start postgres container: %v\n", err)
		os.Exit(1)
	}

	dbHost = resource.GetHostPort("5432/tcp")

	if err := pool.Retry(func() error {
		db, err := database.Open(config.DB{
			User:       "postgres",
			Password:   "postgres",
			Host:       dbHost,
			Name:       "postgres",
			DisableTLS: true,
		})
		if err != nil {
			return err
		}
		adminDB = db
		return db.Ping()
	}); err != nil {
		fmt.Printf("could not connect to postgres container: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		fmt.Printf("could not purge postgres container: %v\n", err)
	}
	os.Exit(code)
}

// TestEnv is one API instance backed by its own freshly migrated
// database, with an admin and a regular account already signed up.
type TestEnv struct {
	DB     *sqlx.DB
	Server *httptest.Server
	URL    string

	UserEmail  string
	UserPass   string
	AdminEmail string
	AdminPass  string

	client *http.Client
}

// stubUploader stands in for the media host.
type stubUploader struct{}

func (stubUploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	return "https://img.example.com/" + filename, nil
}

func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	if _, err := adminDB.Exec("CREATE DATABASE " + name); err != nil {
		return nil, fmt.Errorf("creating test database %s: %w", name, err)
	}

	db, err := database.Open(config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       dbHost,
		Name:       name,
		DisableTLS: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening test database %s: %w", name, err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating test database %s: %w", name, err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	session := scs.New()
	session.Lifetime = 24 * time.Hour

	bg := background.New(log)

	mux := api.APIMux(api.APIConfig{
		Log:        log,
		DB:         db,
		Session:    session,
		Background: bg,
		Broker:     pubsub.NewMemory(),
		Uploader:   stubUploader{},
		Shop: config.Shop{
			Name:           "TokoKita",
			WhatsAppNumber: "6281234567890",
			Latitude:       "-6.200000",
			Longitude:      "106.816666",
		},
		MediaMaxBytes:    5 << 20,
		ExpirationWindow: 24 * time.Hour,
		Limiter:          rate.NewLimiter(1000, 10, 1000),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	env := &TestEnv{
		DB:         db,
		Server:     srv,
		URL:        srv.URL,
		UserEmail:  "user@test.com",
		UserPass:   "userpass123",
		AdminEmail: "admin@test.com",
		AdminPass:  "adminpass123",
		client:     &http.Client{Jar: jar},
	}

	if err := env.signup(t, "Test Admin", env.AdminEmail, env.AdminPass); err != nil {
		return nil, err
	}
	if _, err := db.Exec("UPDATE accounts SET role = 'ADMIN' WHERE email = $1", env.AdminEmail); err != nil {
		return nil, fmt.Errorf("promoting admin account: %w", err)
	}
	if err := env.signup(t, "Test User", env.UserEmail, env.UserPass); err != nil {
		return nil, err
	}
	env.Logout(t)

	return env, nil
}

func (e *TestEnv) Client() *http.Client {
	return e.client
}

func (e *TestEnv) signup(t *testing.T, name, email, pass string) error {
	body := map[string]string{"name": name, "email": email, "password": pass}
	if code := e.do(t, http.MethodPost, "/auth/signup", body, nil); code != http.StatusCreated {
		return fmt.Errorf("signing up %s: status code %d", email, code)
	}
	return nil
}

func (e *TestEnv) Login(t *testing.T, email, pass string) {
	t.Helper()
	body := map[string]string{"email": email, "password": pass}
	if code := e.do(t, http.MethodPost, "/auth/login", body, nil); code != http.StatusOK {
		t.Fatalf("logging in as %s: status code %d", email, code)
	}
}

func (e *TestEnv) Logout(t *testing.T) {
	t.Helper()
	if code := e.do(t, http.MethodPost, "/auth/logout", nil, nil); code != http.StatusNoContent {
		t.Fatalf("logging out: status code %d", code)
	}
}

// do sends body as json and decodes the response into out when out is
// non-nil, returning the status code.
func (e *TestEnv) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, e.URL+path, buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := e.client.Do(r)
	if err != nil {
		t.Fatalf("sending %s %s: %v", method, path, err)
	}
	defer w.Body.Close()

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, path, err)
		}
	} else {
		io.Copy(io.Discard, w.Body)
	}

	return w.StatusCode
}
