package favorites

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/favorites-action/pkg/actions"
	"github.com/code-payments/favorites-action/pkg/metrics"
)

const (
	setFavoritesPath = "/api/actions/set-favorites"
	actionsJsonPath  = "/actions.json"

	transactionBuiltMetricName  = "FavoritesAction/TransactionBuilt"
	transactionFailedMetricName = "FavoritesAction/TransactionFailed"
	postLatencyMetricName       = "FavoritesAction/PostLatency"
	failureEventName            = "FavoritesActionFailure"
)

type Server struct {
	log     *logrus.Entry
	conf    *Config
	builder *TransactionBuilder
}

func NewFavoritesActionServer(conf *Config, blockhashes BlockhashProvider) *Server {
	return &Server{
		log:     logrus.StandardLogger().WithField("type", "favorites/server"),
		conf:    conf,
		builder: NewTransactionBuilder(blockhashes, conf.Program),
	}
}

func (s *Server) setFavoritesHandler(path string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.log.WithFields(logrus.Fields{
			"path":       path,
			"method":     r.Method,
			"request_id": uuid.New().String(),
		})

		switch r.Method {
		case http.MethodOptions:
			s.optionsHandler(w, log)
		case http.MethodGet:
			s.getHandler(w, r, log)
		case http.MethodPost:
			s.postHandler(w, r, log)
		default:
			s.methodNotAllowedHandler(w, log, http.MethodOptions, http.MethodGet, http.MethodPost)
		}
	}
}

func (s *Server) actionsJsonHandler(path string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.log.WithFields(logrus.Fields{
			"path":       path,
			"method":     r.Method,
			"request_id": uuid.New().String(),
		})

		switch r.Method {
		case http.MethodOptions:
			s.optionsHandler(w, log)
		case http.MethodGet:
			s.writeResponse(w, log, http.StatusOK, actionsJson)
		default:
			s.methodNotAllowedHandler(w, log, http.MethodOptions, http.MethodGet)
		}
	}
}

// optionsHandler answers CORS preflight requests with the shared headers only
func (s *Server) optionsHandler(w http.ResponseWriter, log *logrus.Entry) {
	s.writeResponse(w, log, http.StatusOK, nil)
}

func (s *Server) getHandler(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
	iconUrl := resolveIconUrl(r, s.conf.BaseUrl, s.conf.IconPath)
	s.writeResponse(w, log, http.StatusOK, NewSetFavoritesMetadata(iconUrl))
}

func (s *Server) postHandler(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
	ctx := r.Context()

	start := time.Now()
	defer func() {
		metrics.RecordDuration(ctx, postLatencyMetricName, time.Since(start))
	}()

	statusCode, body := func() (int, any) {
		request, err := newSetFavoritesRequestFromHttpContext(w, r)
		if err != nil {
			return s.onPostFailure(r, log, err)
		}

		log = log.WithFields(logrus.Fields{
			"account": request.account,
			"number":  request.number,
			"color":   request.color,
		})

		res, err := s.builder.BuildSetFavoritesTransaction(ctx, request.toBuilderArgs())
		if err != nil {
			return s.onPostFailure(r, log, err)
		}

		log.WithField("favorites_account", base58.Encode(res.Favorites)).Debug("set favorites transaction built")
		metrics.RecordCount(ctx, transactionBuiltMetricName, 1)

		return http.StatusOK, &actions.ActionPostResponse{
			Type:        actions.ActionTypeTransaction,
			Transaction: base64.StdEncoding.EncodeToString(res.Serialized),
		}
	}()

	s.writeResponse(w, log, statusCode, body)
}

// onPostFailure is the single place a failed POST is logged and counted. Every
// failure is a 500 and the caller only gets a message.
func (s *Server) onPostFailure(r *http.Request, log *logrus.Entry, err error) (int, any) {
	code := errorCodeOf(err)

	log.WithError(err).WithField("error_code", code.String()).Warn("failure building set favorites transaction")

	metrics.RecordCount(r.Context(), transactionFailedMetricName, 1)
	metrics.RecordEvent(r.Context(), failureEventName, map[string]interface{}{
		"error_code": code.String(),
	})

	return http.StatusInternalServerError, &actions.ActionError{
		Message: userFacingMessage(err),
	}
}

func (s *Server) methodNotAllowedHandler(w http.ResponseWriter, log *logrus.Entry, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	s.writeResponse(w, log, http.StatusMethodNotAllowed, &actions.ActionError{
		Message: fmt.Sprintf("http %s expected", strings.Join(allowed, ", ")),
	})
}

// writeResponse applies the shared action headers and writes body, if any, as
// JSON
func (s *Server) writeResponse(w http.ResponseWriter, log *logrus.Entry, statusCode int, body any) {
	actions.ApplyHeaders(w.Header(), s.conf.BlockchainId)
	w.WriteHeader(statusCode)

	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("failed to write body")
	}
}

// recoverHandler answers a panicking request with the same headers and error
// body as any other failure.
func (s *Server) recoverHandler(path string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}

			log := s.log.WithFields(logrus.Fields{
				"path":   path,
				"method": r.Method,
			})
			log.WithField("panic", p).Error("recovered from panic")

			metrics.RecordCount(r.Context(), transactionFailedMetricName, 1)

			s.writeResponse(w, log, http.StatusInternalServerError, &actions.ActionError{
				Message: "internal server error",
			})
		}()

		handler(w, r)
	}
}

func (s *Server) GetHandlers() map[string]http.HandlerFunc {
	handlers := map[string]http.HandlerFunc{
		setFavoritesPath: s.recoverHandler(setFavoritesPath, s.setFavoritesHandler(setFavoritesPath)),
	}
	if s.conf.ServeActionsJson {
		handlers[actionsJsonPath] = s.recoverHandler(actionsJsonPath, s.actionsJsonHandler(actionsJsonPath))
	}
	return handlers
}
