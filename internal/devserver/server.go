// Package devserver is a small in-memory GraphQL backend that answers the
// login and createAccount mutations, for running the client locally.
package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/nomad-coffee/client/internal/types"
)

const (
	errUserNotFound  = "User not found."
	errWrongPassword = "Wrong password."
	errEmailTaken    = "This email is already taken."
	errUsernameTaken = "This username is already taken."
)

type user struct {
	ID           string
	Email        string
	Username     string
	PasswordHash []byte
}

type Config struct {
	Secret   []byte
	TokenTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type Server struct {
	cfg Config
	log *logrus.Entry
	now func() time.Time

	mu         sync.RWMutex
	byEmail    map[string]*user
	byUsername map[string]*user
}

func New(cfg Config, log *logrus.Entry) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Server{
		cfg:        cfg,
		log:        log.WithField("component", "devserver"),
		now:        time.Now,
		byEmail:    make(map[string]*user),
		byUsername: make(map[string]*user),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/graphql", s.handleGraphQL)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"request_id": middleware.GetReqID(r.Context()),
			"client_rid": r.Header.Get("X-Request-ID"),
			"duration":   time.Since(start).String(),
		}).Debug("Request served")
	})
}

type response struct {
	Data   interface{}          `json:"data"`
	Errors []types.GraphQLError `json:"errors,omitempty"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	var req types.GraphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Errors: []types.GraphQLError{{Message: "invalid request body"}}})
		return
	}

	switch operation(req) {
	case "login":
		email, password := stringVar(req.Variables, "email"), stringVar(req.Variables, "password")
		writeJSON(w, http.StatusOK, response{Data: types.LoginData{Login: s.login(email, password)}})
	case "createAccount":
		result := s.createAccount(
			stringVar(req.Variables, "email"),
			stringVar(req.Variables, "username"),
			stringVar(req.Variables, "password"),
		)
		writeJSON(w, http.StatusOK, response{Data: types.CreateAccountData{CreateAccount: result}})
	default:
		writeJSON(w, http.StatusOK, response{Errors: []types.GraphQLError{{Message: "unknown operation"}}})
	}
}

// operation picks the mutation by operationName, falling back to the query text.
func operation(req types.GraphQLRequest) string {
	switch req.OperationName {
	case "login", "createAccount":
		return req.OperationName
	}
	switch {
	case strings.Contains(req.Query, "createAccount("):
		return "createAccount"
	case strings.Contains(req.Query, "login("):
		return "login"
	}
	return ""
}

func (s *Server) login(email, password string) types.MutationResult {
	s.mu.RLock()
	u, ok := s.byEmail[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return failure(errUserNotFound)
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return failure(errWrongPassword)
	}

	token, err := s.issueToken(u)
	if err != nil {
		s.log.WithError(err).Error("Failed to sign token")
		return failure("Could not create a session.")
	}
	s.log.WithField("user_id", u.ID).Info("User logged in")
	return types.MutationResult{OK: true, Token: &token}
}

func (s *Server) createAccount(email, username, password string) types.MutationResult {
	if email == "" || username == "" || password == "" {
		return failure("email, username and password are required.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return failure("Password is too long.")
		}
		return failure("Could not create the account.")
	}

	emailKey, usernameKey := strings.ToLower(email), strings.ToLower(username)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[emailKey]; taken {
		return failure(errEmailTaken)
	}
	if _, taken := s.byUsername[usernameKey]; taken {
		return failure(errUsernameTaken)
	}
	u := &user{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	s.byEmail[emailKey] = u
	s.byUsername[usernameKey] = u
	s.log.WithField("user_id", u.ID).Info("Account created")
	return types.MutationResult{OK: true}
}

func (s *Server) issueToken(u *user) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}

// VerifyToken checks a token issued by this server and returns its subject.
func (s *Server) VerifyToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	return parsed.Claims.GetSubject()
}

func failure(msg string) types.MutationResult {
	return types.MutationResult{OK: false, Error: &msg}
}

func stringVar(vars map[string]interface{}, name string) string {
	v, _ := vars[name].(string)
	return v
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
