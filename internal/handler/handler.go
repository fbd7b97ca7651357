package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pechorka/tokenkeeper/internal/handler/internal/request"
	"github.com/pechorka/tokenkeeper/internal/handler/internal/respond"
	"github.com/pechorka/tokenkeeper/internal/handler/mw/auth"
	"github.com/pechorka/tokenkeeper/internal/issuer"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Issuer interface {
	Login(loginID, password string) (issuer.Pair, error)
	Refresh(accessToken, refreshToken string) (string, error)
}

type Handlers struct {
	svc Issuer
	log logrus.FieldLogger
}

func NewHandlers(svc Issuer, log logrus.FieldLogger) *Handlers {
	return &Handlers{svc: svc, log: log}
}

// Router mounts the handlers on a fresh chi router with request logging.
func (h *Handlers) Router() http.Handler {
	mx := chi.NewRouter()
	mx.Use(middleware.RequestID)
	mx.Use(middleware.Recoverer)
	mx.Use(h.logRequests)
	h.Register(mx)
	return mx
}

func (h *Handlers) Register(mx chi.Router) {
	mx.Post("/login", h.Login)
	mx.With(auth.Tokens).Get("/refresh", h.Refresh)
}

type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status string            `json:"status"`
	Data   LoginResponseData `json:"data"`
}

type LoginResponseData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := request.DecodeJSON(r.Body, &req); err != nil {
		respond.ErrorWithMessage(w, http.StatusBadRequest, respond.CODE_INVALID_JSON, "invalid json")
		return
	}
	pair, err := h.svc.Login(req.LoginID, req.Password)
	if err != nil {
		if errors.Is(err, issuer.ErrInvalidCredentials) {
			respond.ErrorWithMessage(w, http.StatusUnauthorized, respond.CODE_UNAUTHORIZED, "unregistered id or password")
			return
		}
		respond.ErrorWithCode(w, http.StatusInternalServerError, respond.CODE_INTERNAL_ERROR)
		return
	}
	respond.JSON(w, LoginResponse{
		Status: "success",
		Data: LoginResponseData{
			AccessToken:  pair.Access,
			RefreshToken: pair.Refresh,
		},
	})
}

type RefreshResponse struct {
	Data RefreshResponseData `json:"data"`
}

type RefreshResponseData struct {
	AccessToken string `json:"accessToken"`
}

func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	access, err := h.svc.Refresh(auth.AccessToken(ctx), auth.RefreshToken(ctx))
	if err != nil {
		if errors.Is(err, issuer.ErrUnknownSession) {
			respond.ErrorWithCode(w, http.StatusUnauthorized, respond.CODE_UNAUTHORIZED)
			return
		}
		respond.ErrorWithCode(w, http.StatusInternalServerError, respond.CODE_INTERNAL_ERROR)
		return
	}
	respond.JSON(w, RefreshResponse{Data: RefreshResponseData{AccessToken: access}})
}

func (h *Handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"took":       time.Since(start),
		}).Info("request served")
	})
}
