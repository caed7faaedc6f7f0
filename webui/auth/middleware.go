package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// loginPage is the minimal login form served at GET /login.
const loginPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Panel Login</title>
<style>
body { font-family: sans-serif; background: #1e1e1e; color: #e8e8e8;
       display: flex; justify-content: center; align-items: center; height: 100vh; }
form { background: #2a2a2a; padding: 2em; border-radius: 8px; }
input { display: block; margin: 0.5em 0; padding: 0.5em; width: 220px; }
.error { color: #e06c75; }
</style></head>
<body>
<form method="POST" action="/login">
  <h2>Panel Login</h2>
  %ERROR%
  <input type="password" name="password" placeholder="Password" autofocus>
  <input type="submit" value="Log in">
</form>
</body>
</html>`

// Middleware gates panel routes behind a password login. It owns the
// password hash, the session store and the cookie settings.
type Middleware struct {
	passwordHash string
	store        *SessionStore
	cookies      CookieConfig
	logger       *zap.Logger
}

// NewMiddleware creates the auth middleware. passwordHash must be a bcrypt
// hash produced by HashPassword.
func NewMiddleware(passwordHash string, store *SessionStore, cookies CookieConfig, logger *zap.Logger) *Middleware {
	return &Middleware{
		passwordHash: passwordHash,
		store:        store,
		cookies:      cookies,
		logger:       logger,
	}
}

// Middleware wraps next, rejecting requests without a live session.
// API paths get a 401; page requests are redirected to /login.
func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := ReadSessionCookie(r)
		if err != nil || !m.store.Validate(id) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MiddlewareFunc is Middleware for http.HandlerFunc values.
func (m *Middleware) MiddlewareFunc(next http.HandlerFunc) http.HandlerFunc {
	return m.Middleware(next).ServeHTTP
}

// LoginHandler serves the login form on GET and processes the password on
// POST. A successful login sets the session cookie and redirects to the
// panel.
func (m *Middleware) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			m.servePage(w, "")
		case http.MethodPost:
			m.handleLogin(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (m *Middleware) servePage(w http.ResponseWriter, errMsg string) {
	html := loginPage
	if errMsg != "" {
		html = strings.Replace(html, "%ERROR%", `<p class="error">`+errMsg+`</p>`, 1)
	} else {
		html = strings.Replace(html, "%ERROR%", "", 1)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (m *Middleware) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	password := r.PostFormValue("password")
	if err := VerifyPassword(m.passwordHash, password); err != nil {
		m.logger.Warn("failed login attempt", zap.String("remote", r.RemoteAddr))
		w.WriteHeader(http.StatusUnauthorized)
		m.servePage(w, "Incorrect password")
		return
	}

	id, err := m.store.Create()
	if err != nil {
		m.logger.Error("session creation failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, NewSessionCookie(id, m.cookies))
	http.Redirect(w, r, "/panel", http.StatusSeeOther)
}

// LogoutHandler deletes the current session and clears the cookie.
func (m *Middleware) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, err := ReadSessionCookie(r); err == nil {
			m.store.Delete(id)
		}
		http.SetCookie(w, ClearSessionCookie(m.cookies))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
