package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pechorka/tokenkeeper/internal/authapi"
	"github.com/pechorka/tokenkeeper/internal/navigation"
	"github.com/pechorka/tokenkeeper/internal/session"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type AuthClient interface {
	Login(ctx context.Context, loginID, password string) (authapi.LoginResponse, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (authapi.RefreshResponse, error)
}

type TokenRepository interface {
	Save(pair session.TokenPair) error
	LoadResult() session.LoadResult
}

// Messages renders user-facing text. Messages may reference {{loginId}}.
type Messages interface {
	TextWithArgs(lang, id string, args map[string]string) string
}

type Config struct {
	Client   AuthClient
	Tokens   TokenRepository
	Messages Messages
	Logger   logrus.FieldLogger
	Lang     string
}

type Service struct {
	client   AuthClient
	tokens   TokenRepository
	messages Messages
	log      logrus.FieldLogger
	lang     string
}

func NewService(cfg Config) *Service {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Lang == "" {
		cfg.Lang = DefaultLang
	}
	return &Service{
		client:   cfg.Client,
		tokens:   cfg.Tokens,
		messages: cfg.Messages,
		log:      cfg.Logger,
		lang:     cfg.Lang,
	}
}

// LoginError is returned by Login. Its message is meant for the user; there
// is no machine readable kind.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return e.Message
}

// Login submits credentials and persists the returned token pair, replacing
// any pair stored before.
func (s *Service) Login(ctx context.Context, loginID, password string) error {
	log := s.log.WithField("login_id", loginID)

	resp, err := s.client.Login(ctx, loginID, password)
	if err != nil {
		var respErr *authapi.ResponseError
		if errors.As(err, &respErr) && respErr.Status == http.StatusUnauthorized {
			log.WithError(err).Info("login rejected")
			return s.loginError(loginID, respErr.Message, MsgUnregisteredCredentials)
		}
		log.WithError(err).Warn("login request failed")
		return s.loginError(loginID, "", MsgUnknownError)
	}

	if resp.StatusCode != http.StatusOK || resp.Status != authapi.StatusSuccess {
		log.WithField("status", resp.Status).Info("login not successful")
		return s.loginError(loginID, resp.Message, MsgLoginFailed)
	}

	pair := session.TokenPair{
		AccessToken:  resp.Data.AccessToken,
		RefreshToken: resp.Data.RefreshToken,
	}
	if !pair.Valid() {
		log.Warn("login response has no tokens")
		return s.loginError(loginID, "", MsgUnknownError)
	}

	if err := s.tokens.Save(pair); err != nil {
		log.WithError(err).Error("failed to persist tokens")
		return s.loginError(loginID, "", MsgUnknownError)
	}
	log.Info("logged in")
	return nil
}

func (s *Service) loginError(loginID, serverMessage, fallbackID string) *LoginError {
	msg := serverMessage
	if msg == "" {
		msg = s.text(fallbackID, map[string]string{"loginId": loginID})
	}
	return &LoginError{Message: msg}
}

func (s *Service) text(id string, args map[string]string) string {
	if s.messages == nil {
		return defaultText(s.lang, id)
	}
	return s.messages.TextWithArgs(s.lang, id, args)
}

// Verify silently re-authenticates the stored session and resets navigation
// to RegisterComplete on success or to Login on any failure. It never
// returns an error and never panics.
func (s *Service) Verify(ctx context.Context, nav navigation.Navigator) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", fmt.Sprint(r)).Error("verify panicked")
			s.fallbackToLogin(nav)
		}
	}()

	if err := s.verify(ctx, nav); err != nil {
		s.log.WithError(err).Error("verify failed")
		s.fallbackToLogin(nav)
	}
}

func (s *Service) verify(ctx context.Context, nav navigation.Navigator) error {
	res := s.tokens.LoadResult()
	switch res.State {
	case session.StateAbsent:
		s.log.Info("no stored session")
		return s.reset(nav, navigation.RouteLogin)
	case session.StateCorrupt:
		s.log.WithError(res.Err).Warn("stored session is unusable")
		return s.reset(nav, navigation.RouteLogin)
	}

	pair := res.Pair
	if !pair.Valid() {
		s.log.Warn("stored session has empty tokens")
		return s.reset(nav, navigation.RouteLogin)
	}

	resp, err := s.client.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	if err != nil {
		// rejected and failed refreshes end up on the same screen
		if authapi.IsUnauthorized(err) {
			s.log.WithError(err).Info("session rejected")
		} else {
			s.log.WithError(err).Warn("refresh failed")
		}
		return s.reset(nav, navigation.RouteLogin)
	}

	if newAccess := resp.Data.AccessToken; newAccess != "" {
		pair.AccessToken = newAccess
		if err := s.tokens.Save(pair); err != nil {
			return errors.Wrap(err, "persist refreshed access token")
		}
		s.log.Debug("access token refreshed")
	}

	return s.reset(nav, navigation.RouteRegisterComplete)
}

func (s *Service) reset(nav navigation.Navigator, route navigation.Route) error {
	if err := nav.ResetTo(route); err != nil {
		return errors.Wrapf(err, "reset to %s", route)
	}
	s.log.WithField("route", route).Debug("navigation reset")
	return nil
}

// fallbackToLogin is the last resort: failures here are logged and dropped.
func (s *Service) fallbackToLogin(nav navigation.Navigator) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", fmt.Sprint(r)).Error("navigation to login panicked")
		}
	}()
	if err := nav.ResetTo(navigation.RouteLogin); err != nil {
		s.log.WithError(err).Error("navigation to login failed")
	}
}
